package postprocess

// Noop passes content through without modification. The CLI uses it to
// exercise discovery and writing without touching markup.
type Noop struct{}

// NewNoop creates a new no-op processor.
func NewNoop() *Noop {
	return &Noop{}
}

// Process returns content unchanged.
func (n *Noop) Process(content, _ string) (string, error) {
	return content, nil
}

// Name returns the processor type.
func (n *Noop) Name() string {
	return "noop"
}

// Func adapts a plain function to a Processor.
type Func struct {
	name string
	fn   func(content, outputPath string) (string, error)
}

// NewFunc wraps fn under the given name.
func NewFunc(name string, fn func(content, outputPath string) (string, error)) *Func {
	return &Func{name: name, fn: fn}
}

// Process calls the wrapped function.
func (f *Func) Process(content, outputPath string) (string, error) {
	return f.fn(content, outputPath)
}

// Name returns the name given to NewFunc.
func (f *Func) Name() string {
	return f.name
}
