// Package backend talks to the user-deployed script endpoint that fronts the
// admin and portfolio spreadsheets.
//
// # Wire format
//
// Every call is a POST to <endpoint>?action=<action> with a JSON body sent as
// text/plain (the script host rejects CORS preflights). Replies use one
// envelope:
//
//	{"success": true, "message": "...", "data": {...}, "timestamp": 1760000000000}
//
// A GET on the bare endpoint is a liveness probe answering {"status":"ok"}.
//
// # Error Handling
//
// Transport failures wrap ErrUnavailable, non-2xx replies are *HTTPError and
// bodies that are not an envelope wrap ErrMalformedResponse. Application-level
// failures (success=false) are returned as envelopes; interpreting them is the
// caller's job.
package backend
