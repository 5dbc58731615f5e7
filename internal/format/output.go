package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	JSON = "json"
	YAML = "yaml"
	Text = "text"
)

// Texter is implemented by values that know how to render themselves for a
// terminal.
type Texter interface {
	Text() string
}

// Parse normalizes a --format value.
func Parse(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case "":
		return Text, nil
	case JSON, YAML, Text:
		return f, nil
	case "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected json, yaml or text)", s)
	}
}

// Write writes output in the requested format.
//
// Supported formats:
// - json
// - yaml
// - text (default): v.Text() when v is a Texter, otherwise yaml
func Write(w io.Writer, v any, format string, pretty bool) error {
	f, err := Parse(format)
	if err != nil {
		return err
	}
	switch f {
	case JSON:
		return WriteJSON(w, v, pretty)
	case YAML:
		return WriteYAML(w, v)
	default:
		return WriteText(w, v)
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

func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		if s := t.Text(); s != "" {
			_, err := fmt.Fprintln(w, strings.TrimRight(s, "\n"))
			return err
		}
	}
	return WriteYAML(w, v)
}
