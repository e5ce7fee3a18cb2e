package site

import (
	"time"

	"github.com/jmylchreest/postcraft/pkg/article"
)

// PageReport is the outcome of processing one page.
type PageReport struct {
	Path        string            `json:"path" yaml:"path"`
	InputBytes  int               `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int               `json:"output_bytes" yaml:"output_bytes"`
	Changed     bool              `json:"changed" yaml:"changed"`
	Written     bool              `json:"written" yaml:"written"`
	Passthrough bool              `json:"passthrough,omitempty" yaml:"passthrough,omitempty"`
	Skipped     bool              `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Stats       *article.Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings    []article.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error       string            `json:"error,omitempty" yaml:"error,omitempty"`
	Duration    time.Duration     `json:"duration_ns" yaml:"duration_ns"`

	err error
}

// Err returns the page's error, if any.
func (p *PageReport) Err() error {
	return p.err
}

func (p *PageReport) fail(err error) {
	p.err = err
	p.Error = err.Error()
}

// Summary aggregates a run.
type Summary struct {
	Processor   string        `json:"processor" yaml:"processor"`
	Pages       int           `json:"pages" yaml:"pages"`
	Changed     int           `json:"changed" yaml:"changed"`
	Written     int           `json:"written" yaml:"written"`
	Failed      int           `json:"failed" yaml:"failed"`
	Skipped     int           `json:"skipped" yaml:"skipped"`
	Warnings    int           `json:"warnings" yaml:"warnings"`
	InputBytes  int64         `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int64         `json:"output_bytes" yaml:"output_bytes"`
	DryRun      bool          `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	Totals      article.Stats `json:"totals" yaml:"totals"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Report is the full outcome of Runner.Run. Pages keep discovery order.
type Report struct {
	Summary Summary       `json:"summary" yaml:"summary"`
	Pages   []*PageReport `json:"pages" yaml:"pages"`
}

// Lines returns one record per page followed by the summary, for JSONL.
func (r *Report) Lines() []any {
	out := make([]any, 0, len(r.Pages)+1)
	for _, p := range r.Pages {
		out = append(out, p)
	}
	return append(out, r.Summary)
}

func (r *Report) summarize() {
	s := &r.Summary
	s.Pages = len(r.Pages)
	for _, p := range r.Pages {
		switch {
		case p.Skipped:
			s.Skipped++
		case p.err != nil:
			s.Failed++
		}
		if p.Changed {
			s.Changed++
		}
		if p.Written {
			s.Written++
		}
		s.Warnings += len(p.Warnings)
		s.InputBytes += int64(p.InputBytes)
		s.OutputBytes += int64(p.OutputBytes)
		s.Totals.Add(p.Stats)
	}
}
