package format

import (
	"encoding/json"
	"fmt"
	"io"

	"calpick/internal/calendar"
)

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - edn
// - text (grids as tables, strings verbatim, anything else as indented JSON)
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (expected json|edn|text)", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// TextWriter is implemented by payloads with their own human rendering.
type TextWriter interface {
	WriteText(w io.Writer) error
}

func WriteText(w io.Writer, v any) error {
	switch t := v.(type) {
	case calendar.Grid:
		_, err := fmt.Fprintln(w, RenderGrid(w, t))
		return err
	case *calendar.Grid:
		_, err := fmt.Fprintln(w, RenderGrid(w, *t))
		return err
	case TextWriter:
		return t.WriteText(w)
	case string:
		_, err := fmt.Fprintln(w, t)
		return err
	default:
		return WriteJSON(w, v, true)
	}
}
