package article

import (
	"strings"
	"testing"

	"github.com/jmylchreest/postcraft/pkg/postprocess"
)

var _ postprocess.Processor = (*Transformer)(nil)

func TestTransformer_InChain(t *testing.T) {
	tr := newTransformer(t, PresetAnchorsOnly())
	chain := postprocess.NewChain(postprocess.NewNoop(), tr)

	out, err := chain.Process(page(`<h2>Chained</h2>`), "index.html")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(out, `id="heading-chained"`) {
		t.Errorf("expected anchored heading, got %s", out)
	}
	if chain.Name() != "chain(noop->article)" {
		t.Errorf("Name() = %q", chain.Name())
	}
}
