package relay

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Flag is the relay's success indicator. The relay has been seen sending both
// a JSON boolean and the strings "true"/"false"; Flag folds them into one bool.
// Any other value decodes as false.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("true")):
		*f = true
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = s == "true"
	default:
		*f = false
	}
	return nil
}

type wireReply struct {
	Success Flag   `json:"success"`
	Message string `json:"message"`
}

func decodeReply(body []byte) (Reply, error) {
	var w wireReply
	if err := json.Unmarshal(body, &w); err != nil {
		return Reply{}, fmt.Errorf("decode relay reply: %w", err)
	}
	return Reply{Success: bool(w.Success), Message: w.Message}, nil
}
