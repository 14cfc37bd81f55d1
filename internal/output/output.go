// Package output renders a review session for consumption: stable JSON for
// tooling, colored text for terminals.
package output

import (
	"fmt"
	"io"
	"os"

	"reviewd/internal/review"
)

// Writer renders a session in one format.
type Writer interface {
	Write(w io.Writer, session *review.Session) error
}

// GetWriter returns a writer for the given format name.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "text":
		return &TextWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteSession renders the session to outPath, or stdout when outPath is
// empty.
func WriteSession(session *review.Session, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, session)
}
