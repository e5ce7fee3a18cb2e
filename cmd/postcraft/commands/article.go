package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jmylchreest/postcraft/pkg/article"
)

// addArticleFlags registers the transform flags shared by build and
// transform. Each command binds its own copy at run time.
func addArticleFlags(flags *pflag.FlagSet) {
	def := article.DefaultConfig()

	flags.String("assets", def.AssetRoot, "directory image src paths resolve against")
	flags.String("selector", def.ArticleSelector, "CSS selector of the article region")
	flags.String("heading-prefix", def.HeadingIDPrefix, "prefix for generated heading ids")
	flags.Bool("caption-markup", def.CaptionMarkup, "treat image titles as HTML in captions")
	flags.Bool("anchors-only", false, "only add heading anchors; never read image files")
}

var articleFlagKeys = map[string]string{
	"assets":         "article.asset_root",
	"selector":       "article.article_selector",
	"heading-prefix": "article.heading_id_prefix",
	"caption-markup": "article.caption_markup",
	"anchors-only":   "article.anchors_only",
}

func bindArticleFlags(cmd *cobra.Command) {
	for flag, key := range articleFlagKeys {
		_ = viper.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}

// loadArticleConfig layers flags, environment and the "article" section of
// the config file over the defaults.
func loadArticleConfig() (*article.Config, error) {
	cfg := article.DefaultConfig()
	if viper.GetBool("article.anchors_only") {
		cfg = article.PresetAnchorsOnly()
	}

	if err := viper.UnmarshalKey("article", cfg); err != nil {
		return nil, fmt.Errorf("reading article config: %w", err)
	}

	// Flag-bound keys resolve flag > env > file > flag default.
	cfg.AssetRoot = viper.GetString("article.asset_root")
	cfg.ArticleSelector = viper.GetString("article.article_selector")
	cfg.HeadingIDPrefix = viper.GetString("article.heading_id_prefix")
	cfg.CaptionMarkup = viper.GetBool("article.caption_markup")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
