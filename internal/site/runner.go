package site

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/jmylchreest/postcraft/internal/logger"
	"github.com/jmylchreest/postcraft/pkg/article"
	"github.com/jmylchreest/postcraft/pkg/postprocess"
)

// statsProcessor is implemented by processors that report per-page stats,
// such as *article.Transformer.
type statsProcessor interface {
	TransformWithStats(src, outputPath string) (*article.Result, error)
}

// Runner processes pages concurrently and writes them back in place.
type Runner struct {
	// Processor rewrites each page. Required.
	Processor postprocess.Processor

	// Fs is the filesystem pages are read from and written to.
	// Defaults to the OS filesystem.
	Fs afero.Fs

	// Concurrency caps the pages in flight. Zero or less means GOMAXPROCS.
	Concurrency int

	// DryRun processes pages without writing them.
	DryRun bool

	// KeepGoing processes every page even after a failure and returns the
	// joined errors. By default the first failure cancels the run.
	KeepGoing bool
}

// Run processes pages and returns a report covering every page, including
// those skipped after a failure. The error is non-nil when any page failed.
func (r *Runner) Run(ctx context.Context, pages []string) (*Report, error) {
	if r.Processor == nil {
		return nil, errors.New("site: runner has no processor")
	}
	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	limit := r.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	report := &Report{
		Summary: Summary{Processor: r.Processor.Name(), DryRun: r.DryRun},
		Pages:   make([]*PageReport, len(pages)),
	}

	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for i, path := range pages {
		path := path
		page := &PageReport{Path: path}
		report.Pages[i] = page

		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				page.Skipped = true
				page.fail(err)
				return nil
			}
			if err := r.processPage(fsys, page); err != nil {
				page.fail(err)
				logger.Page(path, r.Processor.Name()).Error("page failed", "error", err)
				if !r.KeepGoing {
					return err
				}
			}
			return nil
		})
	}

	firstErr := group.Wait()

	report.summarize()
	report.Summary.Duration = time.Since(start)

	if firstErr != nil {
		return report, firstErr
	}
	if r.KeepGoing {
		var errs []error
		for _, p := range report.Pages {
			if p.err != nil {
				errs = append(errs, p.err)
			}
		}
		if len(errs) > 0 {
			return report, fmt.Errorf("%d of %d pages failed: %w", len(errs), len(pages), errors.Join(errs...))
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

func (r *Runner) processPage(fsys afero.Fs, page *PageReport) error {
	start := time.Now()
	defer func() { page.Duration = time.Since(start) }()

	log := logger.Page(page.Path, r.Processor.Name())

	data, err := afero.ReadFile(fsys, page.Path)
	if err != nil {
		return err
	}
	src := string(data)
	page.InputBytes = len(src)

	out, err := r.process(src, page)
	if err != nil {
		return err
	}
	page.OutputBytes = len(out)
	page.Changed = out != src

	for _, w := range page.Warnings {
		log.Warn(w.Message, "rule", w.Rule, "context", w.Context)
	}

	if !page.Changed || r.DryRun {
		log.Debug("page processed", "changed", page.Changed, "dry_run", r.DryRun)
		return nil
	}
	if err := writeAtomic(fsys, page.Path, []byte(out)); err != nil {
		return fmt.Errorf("writing %s: %w", page.Path, err)
	}
	page.Written = true
	log.Debug("page written", "bytes", page.OutputBytes)
	return nil
}

func (r *Runner) process(src string, page *PageReport) (string, error) {
	sp, ok := r.Processor.(statsProcessor)
	if !ok {
		return r.Processor.Process(src, page.Path)
	}
	res, err := sp.TransformWithStats(src, page.Path)
	if err != nil {
		return "", err
	}
	page.Stats = res.Stats
	page.Warnings = res.Warnings
	page.Passthrough = res.Passthrough
	return res.Content, nil
}

// writeAtomic replaces path with data via a temp file in the same directory,
// so a crash never leaves a half-written page. The original mode is kept.
func writeAtomic(fsys afero.Fs, path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := fsys.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = fsys.Chmod(tmpName, mode); err != nil {
		return err
	}
	return fsys.Rename(tmpName, path)
}
