// Package postprocess defines the hook every rendered page passes through
// before it is written to disk.
package postprocess

// Processor rewrites one rendered page. outputPath is the path the page will
// be written to; processors use it to decide whether the page applies.
type Processor interface {
	// Process returns the content to write in place of content.
	Process(content, outputPath string) (string, error)

	// Name returns the processor type for logging/debugging.
	Name() string
}
