package output

import (
	"encoding/json"
	"io"
)

// Page paths are written verbatim, so HTML escaping is off.
func newJSONEncoder(w io.Writer) *json.Encoder {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc
}

func encodeJSON(w io.Writer, v any, indent string) error {
	enc := newJSONEncoder(w)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(v)
}

func encodeJSONL(w io.Writer, v any) error {
	enc := newJSONEncoder(w)

	l, ok := v.(Lines)
	if !ok {
		return enc.Encode(v)
	}
	for _, item := range l.Lines() {
		if err := enc.Encode(item); err != nil {
			return err
		}
	}
	return nil
}
