package article

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/jmylchreest/postcraft/pkg/imagesize"
)

// Doctype is prepended to every transformed page. Build output diffs rely
// on the exact bytes, line ending included.
const Doctype = "<!DOCTYPE html>\r\n"

// Transformer rewrites article pages. It holds no per-page state, so a
// single Transformer can serve concurrent calls.
type Transformer struct {
	config   *Config
	prober   imagesize.Prober
	minify   Minifier
	icon     []*html.Node
	gifIcon  *html.Node
	selector string
}

// Option configures a Transformer.
type Option func(*Transformer)

// WithProber replaces the on-disk dimension prober rooted at AssetRoot.
func WithProber(p imagesize.Prober) Option {
	return func(t *Transformer) {
		t.prober = p
	}
}

// WithMinifier replaces the markup minifier used on the permalink icon.
func WithMinifier(m Minifier) Option {
	return func(t *Transformer) {
		t.minify = m
	}
}

// New creates a Transformer. If config is nil, DefaultConfig() is used.
// Empty markup fields are filled from the defaults before validation.
func New(config *Config, opts ...Option) (*Transformer, error) {
	if config == nil {
		config = DefaultConfig()
	}
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	t := &Transformer{
		config: config,
		minify: CompactMarkup,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.prober == nil {
		t.prober = imagesize.New(config.AssetRoot)
	}
	if t.minify == nil {
		t.minify = NoopMinifier
	}

	icon, err := parsePermalinkIcon(t.minify(fmt.Sprintf(permalinkMarkup, html.EscapeString(config.HiddenClass))))
	if err != nil {
		return nil, fmt.Errorf("parsing permalink icon: %w", err)
	}
	t.icon = icon
	t.gifIcon = gifIcon()
	t.selector = strings.Join(config.HeadingLevels, ", ")

	return t, nil
}

// Name returns the processor name for logging.
func (t *Transformer) Name() string {
	return "article"
}

// Config returns a copy of the active configuration.
func (t *Transformer) Config() Config {
	return *t.config
}

// Process implements postprocess.Processor.
func (t *Transformer) Process(src, outputPath string) (string, error) {
	return t.Transform(src, outputPath)
}

// Transform rewrites src when outputPath is an HTML target and returns src
// unchanged otherwise.
func (t *Transformer) Transform(src, outputPath string) (string, error) {
	result, err := t.TransformWithStats(src, outputPath)
	if err != nil {
		return "", err
	}
	return result.Content, nil
}

// Applies reports whether outputPath goes through the transform.
func (t *Transformer) Applies(outputPath string) bool {
	return strings.HasSuffix(outputPath, t.config.OutputExtension)
}

// TransformWithStats is Transform plus per-rule counters and warnings.
// Any error aborts the page; no partial output is returned.
func (t *Transformer) TransformWithStats(src, outputPath string) (*Result, error) {
	startTime := time.Now()
	result := &Result{
		Stats: NewStats(),
	}
	result.Stats.InputBytes = len(src)

	if !t.Applies(outputPath) {
		result.Content = src
		result.Passthrough = true
		result.Stats.OutputBytes = len(src)
		result.Stats.TotalDuration = time.Since(startTime)
		return result, nil
	}

	// Parse HTML
	parseStart := time.Now()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	result.Stats.ParseDuration = time.Since(parseStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, outputPath, err)
	}

	// Transform
	transformStart := time.Now()
	if err := t.transform(doc, result); err != nil {
		return nil, fmt.Errorf("%s: %w", outputPath, err)
	}
	result.Stats.TransformDuration = time.Since(transformStart)

	// Generate output
	outputStart := time.Now()
	output, err := serialize(doc)
	result.Stats.OutputDuration = time.Since(outputStart)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSerialize, outputPath, err)
	}

	result.Content = output
	result.Stats.OutputBytes = len(output)
	result.Stats.TotalDuration = time.Since(startTime)

	return result, nil
}

// transform applies the rules in their fixed order. Each rule snapshots its
// matches before mutating, and only replaces the nodes it matched.
func (t *Transformer) transform(doc *goquery.Document, result *Result) error {
	region := doc.Find(t.config.ArticleSelector)
	if region.Length() == 0 {
		return nil
	}
	result.Stats.RegionFound = true

	if err := t.rewriteImages(region, result); err != nil {
		return err
	}
	if t.config.HeadingAnchors {
		t.anchorHeadings(region, result)
	}
	if t.config.WrapEmbeds {
		t.wrapEmbeds(region, result)
	}
	return nil
}

// serialize renders the document element behind the fixed doctype.
func serialize(doc *goquery.Document) (string, error) {
	root := doc.Find("html").First()
	if root.Length() == 0 {
		return "", fmt.Errorf("document has no root element")
	}
	markup, err := goquery.OuterHtml(root)
	if err != nil {
		return "", err
	}
	return Doctype + markup, nil
}

// nodes returns the selection's nodes as a stable slice.
func nodes(s *goquery.Selection) []*html.Node {
	out := make([]*html.Node, len(s.Nodes))
	copy(out, s.Nodes)
	return out
}
