package commands

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/postcraft/internal/logger"
	"github.com/jmylchreest/postcraft/internal/output"
	"github.com/jmylchreest/postcraft/internal/site"
	"github.com/jmylchreest/postcraft/pkg/article"
	"github.com/jmylchreest/postcraft/pkg/postprocess"
)

var buildCmd = &cobra.Command{
	Use:   "build [site-dir]",
	Short: "Post-process every page of a built site in place",
	Long: `Discover the HTML pages under site-dir (default _site) and run the
article transform on each of them, writing changed pages back atomically.

Examples:
  # Rewrite the site with images resolved against ./src
  postcraft build _site --assets src

  # Check that every local image exists without writing anything
  postcraft build --dry-run --keep-going

  # Write a per-page report
  postcraft build --report build-report.yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: bindBuildFlags,
	RunE:    runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	flags := buildCmd.Flags()
	addArticleFlags(flags)

	// Run settings
	flags.IntP("concurrency", "c", 0, "pages processed at once (0 = number of CPUs)")
	flags.Bool("dry-run", false, "process pages without writing them")
	flags.Bool("no-transform", false, "run discovery and I/O with a pass-through processor")
	flags.Bool("keep-going", false, "process every page even after a failure")

	// Report settings
	flags.String("report", "", "write a per-page report to this file")
	flags.String("format", "", "report format: json, jsonl, yaml (default: from --report extension)")
}

func bindBuildFlags(cmd *cobra.Command, _ []string) error {
	bindArticleFlags(cmd)
	flags := cmd.Flags()
	_ = viper.BindPFlag("build.concurrency", flags.Lookup("concurrency"))
	_ = viper.BindPFlag("build.keep_going", flags.Lookup("keep-going"))
	viper.SetDefault("build.site_dir", "_site")
	return nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	siteDir := viper.GetString("build.site_dir")
	if len(args) > 0 {
		siteDir = args[0]
	}

	proc, ext, err := buildProcessor(cmd)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}

	pages, err := site.Discover(siteDir, ext)
	if err != nil {
		logger.Error("page discovery failed", "dir", siteDir, "error", err)
		return err
	}
	logger.Debug("pages discovered", "dir", siteDir, "count", len(pages), "processor", proc.Name())

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	runner := &site.Runner{
		Processor:   proc,
		Concurrency: viper.GetInt("build.concurrency"),
		DryRun:      dryRun,
		KeepGoing:   viper.GetBool("build.keep_going"),
	}
	report, runErr := runner.Run(ctx, pages)

	if report != nil {
		logSummary(report.Summary)
		if err := writeReport(cmd, report); err != nil {
			logger.Error("failed to write report", "error", err)
			if runErr == nil {
				return err
			}
		}
	}
	return runErr
}

// buildProcessor returns the processor for the run and the page extension
// it applies to.
func buildProcessor(cmd *cobra.Command) (postprocess.Processor, string, error) {
	cfg, err := loadArticleConfig()
	if err != nil {
		return nil, "", err
	}

	if noTransform, _ := cmd.Flags().GetBool("no-transform"); noTransform {
		return postprocess.NewNoop(), cfg.OutputExtension, nil
	}

	tr, err := article.New(cfg)
	if err != nil {
		return nil, "", err
	}
	logger.Debug("article transform configured",
		"selector", cfg.ArticleSelector,
		"assets", cfg.AssetRoot,
		"heading_prefix", cfg.HeadingIDPrefix,
	)
	return tr, cfg.OutputExtension, nil
}

func logSummary(s site.Summary) {
	args := []any{
		"pages", humanize.Comma(int64(s.Pages)),
		"changed", s.Changed,
		"written", s.Written,
		"size", fmt.Sprintf("%s -> %s", humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes))),
		"duration", s.Duration.Round(time.Millisecond),
	}
	if s.Totals.HeadingsAnchored+s.Totals.Images+s.Totals.Embeds > 0 {
		args = append(args,
			"images_sized", s.Totals.ImagesSized,
			"gifs", s.Totals.GIFsWrapped,
			"figures", s.Totals.FiguresBuilt,
			"headings", s.Totals.HeadingsAnchored,
			"embeds", s.Totals.EmbedsWrapped,
		)
	}
	if s.Warnings > 0 {
		args = append(args, "warnings", s.Warnings)
	}

	switch {
	case s.Failed > 0:
		logger.Error("build finished with failures", append(args, "failed", s.Failed, "skipped", s.Skipped)...)
	case s.DryRun:
		logger.Info("dry run complete", args...)
	default:
		logger.Info("build complete", args...)
	}
}

func writeReport(cmd *cobra.Command, report *site.Report) error {
	path, _ := cmd.Flags().GetString("report")
	if path == "" {
		return nil
	}

	formatStr, _ := cmd.Flags().GetString("format")
	format := output.FormatForPath(path)
	if formatStr != "" {
		f, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}
		format = f
	}

	if err := output.WriteFile(path, format, report); err != nil {
		return err
	}
	logger.Debug("report written", "path", path, "format", format)
	return nil
}
