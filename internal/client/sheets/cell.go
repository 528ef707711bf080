package sheets

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Cell is one spreadsheet value as delivered in JSON. Strings, numbers and
// booleans keep their text form; null, objects and arrays read as empty.
type Cell struct {
	text string
}

// TextCell builds a Cell holding s.
func TextCell(s string) Cell { return Cell{text: s} }

func (c *Cell) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		c.text = x
	case json.Number:
		c.text = x.String()
	case bool:
		c.text = strconv.FormatBool(x)
	default:
		c.text = ""
	}
	return nil
}

func (c Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.text)
}

func (c Cell) String() string { return c.text }

// Empty reports whether the cell has no usable text.
func (c Cell) Empty() bool { return strings.TrimSpace(c.text) == "" }

// Int reads the leading integer of the cell the way spreadsheet exports are
// usually read: "85", "85%" and "85.9" all give 85. ok is false when there is
// no leading integer.
func (c Cell) Int() (n int, ok bool) {
	s := strings.TrimSpace(c.text)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}

// Bool is true only for a case-insensitive "true".
func (c Cell) Bool() bool {
	return strings.EqualFold(strings.TrimSpace(c.text), "true")
}
