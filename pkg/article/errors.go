package article

import "errors"

// Sentinel errors returned by the transform.
var (
	// ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid article config")

	// ErrParse is returned when the page cannot be read into a tree.
	ErrParse = errors.New("HTML parse failed")

	// ErrImageProbe is returned when a local image's dimensions cannot be
	// read. The underlying filesystem or decode error stays in the chain.
	ErrImageProbe = errors.New("image dimension probe failed")

	// ErrSerialize is returned when the rewritten tree cannot be rendered.
	ErrSerialize = errors.New("HTML serialization failed")
)
