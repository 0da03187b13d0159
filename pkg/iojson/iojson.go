// Package iojson reads and writes JSON from a command line perspective.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is written to the error stream when output cannot be encoded.
type Error struct {
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

func errorLine(msg string, err error) string {
	bits, mErr := json.Marshal(Error{Message: msg, Detail: err.Error()})
	if mErr != nil {
		return fmt.Sprintf(`{"message":%q}`, msg)
	}
	return string(bits)
}

// WriteWith writes obj to w as indented JSON followed by a newline. When obj
// cannot be marshaled an Error line is written to ew and the error returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintln(ew, errorLine("marshal output", err))
		return fmt.Errorf("marshal output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
