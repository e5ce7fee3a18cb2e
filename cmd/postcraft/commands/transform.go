package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/postcraft/internal/logger"
	"github.com/jmylchreest/postcraft/pkg/article"
)

var transformCmd = &cobra.Command{
	Use:   "transform [file]",
	Short: "Transform a single page",
	Long: `Run the article transform on one page read from file or stdin and
write the result to stdout or --output.

The output path decides whether the page is transformed at all: it defaults
to the input file name, or index.html when reading stdin.

Examples:
  postcraft transform _site/post/index.html -o /tmp/post.html
  curl -s http://localhost:4000/ | postcraft transform --stats`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		bindArticleFlags(cmd)
		return nil
	},
	RunE: runTransform,
}

func init() {
	rootCmd.AddCommand(transformCmd)

	flags := transformCmd.Flags()
	addArticleFlags(flags)

	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("output-path", "", "path the page would be written to; gates the transform")
	flags.Bool("stats", false, "print transform stats to stderr")
}

func runTransform(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	outputPath := "index.html"
	if len(args) > 0 {
		f, err := os.Open(args[0]) //#nosec G304 -- CLI tool reads user-specified file
		if err != nil {
			logger.Error("failed to open input", "path", args[0], "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		in = f
		outputPath = args[0]
	}
	if p, _ := cmd.Flags().GetString("output-path"); p != "" {
		outputPath = p
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	cfg, err := loadArticleConfig()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return err
	}
	tr, err := article.New(cfg)
	if err != nil {
		return err
	}

	result, err := tr.TransformWithStats(string(src), outputPath)
	if err != nil {
		logger.Error("transform failed", "path", outputPath, "error", err)
		return err
	}
	for _, w := range result.Warnings {
		logger.Warn(w.Message, "rule", w.Rule, "context", w.Context)
	}

	out := cmd.OutOrStdout()
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logger.Error("failed to create output file", "path", outPath, "error", err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if _, err := io.WriteString(out, result.Content); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if showStats, _ := cmd.Flags().GetBool("stats"); showStats {
		if result.Passthrough {
			fmt.Fprintf(cmd.ErrOrStderr(), "passthrough: %s does not end in %s\n", outputPath, cfg.OutputExtension)
		} else {
			fmt.Fprint(cmd.ErrOrStderr(), result.Stats.String())
		}
	}
	return nil
}
