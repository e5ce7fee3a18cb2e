package article

import (
	"fmt"
	"strings"
	"time"
)

// Stats captures what the transform did to one page.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`

	// RegionFound is false when the page has no article region.
	RegionFound bool `json:"region_found" yaml:"region_found"`

	// Image rule
	Images       int `json:"images" yaml:"images"`
	ImagesLazy   int `json:"images_lazy" yaml:"images_lazy"`
	ImagesSized  int `json:"images_sized" yaml:"images_sized"`
	ImagesRemote int `json:"images_remote" yaml:"images_remote"`
	GIFsWrapped  int `json:"gifs_wrapped" yaml:"gifs_wrapped"`
	FiguresBuilt int `json:"figures_built" yaml:"figures_built"`

	// Heading rule
	HeadingsFound    int `json:"headings" yaml:"headings"`
	HeadingsAnchored int `json:"headings_anchored" yaml:"headings_anchored"`
	DuplicateIDs     int `json:"duplicate_ids,omitempty" yaml:"duplicate_ids,omitempty"`

	// Embed rule
	Embeds        int `json:"embeds" yaml:"embeds"`
	EmbedsWrapped int `json:"embeds_wrapped" yaml:"embeds_wrapped"`

	// Timing
	ParseDuration     time.Duration `json:"parse_duration_ns" yaml:"parse_duration_ns"`
	TransformDuration time.Duration `json:"transform_duration_ns" yaml:"transform_duration_ns"`
	OutputDuration    time.Duration `json:"output_duration_ns" yaml:"output_duration_ns"`
	TotalDuration     time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates an empty Stats.
func NewStats() *Stats {
	return &Stats{}
}

// Changed reports whether any rule touched the page.
func (s *Stats) Changed() bool {
	return s.ImagesLazy+s.ImagesSized+s.GIFsWrapped+s.FiguresBuilt+s.HeadingsAnchored+s.EmbedsWrapped > 0
}

// Add accumulates other into s. Used for site-wide totals.
func (s *Stats) Add(other *Stats) {
	if other == nil {
		return
	}
	s.InputBytes += other.InputBytes
	s.OutputBytes += other.OutputBytes
	s.RegionFound = s.RegionFound || other.RegionFound
	s.Images += other.Images
	s.ImagesLazy += other.ImagesLazy
	s.ImagesSized += other.ImagesSized
	s.ImagesRemote += other.ImagesRemote
	s.GIFsWrapped += other.GIFsWrapped
	s.FiguresBuilt += other.FiguresBuilt
	s.HeadingsFound += other.HeadingsFound
	s.HeadingsAnchored += other.HeadingsAnchored
	s.DuplicateIDs += other.DuplicateIDs
	s.Embeds += other.Embeds
	s.EmbedsWrapped += other.EmbedsWrapped
	s.ParseDuration += other.ParseDuration
	s.TransformDuration += other.TransformDuration
	s.OutputDuration += other.OutputDuration
	s.TotalDuration += other.TotalDuration
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes\n", s.InputBytes, s.OutputBytes))

	if !s.RegionFound {
		sb.WriteString("Article region: not found\n")
	}

	sb.WriteString(fmt.Sprintf("Images: %d (%d sized, %d remote, %d gifs, %d figures)\n",
		s.Images, s.ImagesSized, s.ImagesRemote, s.GIFsWrapped, s.FiguresBuilt))

	sb.WriteString(fmt.Sprintf("Headings: %d anchored of %d\n", s.HeadingsAnchored, s.HeadingsFound))

	if s.DuplicateIDs > 0 {
		sb.WriteString(fmt.Sprintf("Duplicate heading ids: %d\n", s.DuplicateIDs))
	}

	sb.WriteString(fmt.Sprintf("Embeds: %d wrapped of %d\n", s.EmbedsWrapped, s.Embeds))

	sb.WriteString(fmt.Sprintf("Timing: parse=%v, transform=%v, output=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond),
		s.TransformDuration.Round(time.Microsecond),
		s.OutputDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}

// Warning is a non-fatal observation about the page.
type Warning struct {
	Rule    string `json:"rule" yaml:"rule"`       // "images", "headings", "embeds"
	Message string `json:"message" yaml:"message"` // Human-readable description
	Context string `json:"context,omitempty" yaml:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Rule, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Rule, w.Message)
}

// Result is the outcome of transforming one page.
type Result struct {
	// Content is the rewritten page, or the input for passthrough paths.
	Content string `json:"-" yaml:"-"`

	// Passthrough is true when the output path skipped the transform.
	Passthrough bool `json:"passthrough" yaml:"passthrough"`

	Stats    *Stats    `json:"stats" yaml:"stats"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning records a warning.
func (r *Result) AddWarning(rule, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Rule:    rule,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
