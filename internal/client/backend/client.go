package backend

import "context"

// Request is one POST to the script endpoint. Bearer, when set, is sent as an
// Authorization header.
type Request struct {
	Endpoint string
	Action   string
	Body     any
	Bearer   string
}

// Client is the transport contract used by the auth service.
type Client interface {
	Call(ctx context.Context, req Request) (*Envelope, error)
	Ping(ctx context.Context, endpoint string) error
}
