package postprocess

import (
	"strings"
)

// Chain applies processors in sequence.
type Chain struct {
	processors []Processor
}

// NewChain creates a processor that runs processors in the order provided.
//
// Example:
//
//	tr, _ := article.New(article.DefaultConfig())
//	chain := postprocess.NewChain(tr, postprocess.NewNoop())
func NewChain(processors ...Processor) *Chain {
	return &Chain{
		processors: processors,
	}
}

// Process feeds each processor's output to the next. The first error stops
// the chain and no content is returned.
func (c *Chain) Process(content, outputPath string) (string, error) {
	var err error
	for _, p := range c.processors {
		content, err = p.Process(content, outputPath)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// Name returns the names of all chained processors.
func (c *Chain) Name() string {
	names := make([]string, len(c.processors))
	for i, p := range c.processors {
		names[i] = p.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
