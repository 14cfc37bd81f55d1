package output

import (
	"encoding/json"
	"fmt"
	"io"

	"reviewd/internal/review"
)

// JSONWriter emits the full session in the stable machine-readable shape.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, session *review.Session) error {
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
