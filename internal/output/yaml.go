package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

func encodeYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
