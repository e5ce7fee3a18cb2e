// Package commands implements the CLI commands for postcraft.
package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/postcraft/internal/logger"
	"github.com/jmylchreest/postcraft/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "postcraft",
	Short: "Post-process rendered article pages of a static site",
	Long: `Postcraft rewrites the rendered HTML of article pages before they ship.

Inside the article region it lazy-loads and sizes images from the asset
directory, turns GIFs into click-to-play toggles, builds captioned figures
from image titles, adds permalink anchors to headings and wraps fullscreen
embeds in a responsive player container. Pages without an article region
are only re-serialized.

Examples:
  # Rewrite every page of a built site in place
  postcraft build _site --assets src

  # Preview what would change without writing
  postcraft build _site --dry-run --report report.json

  # Transform a single page from stdin
  cat _site/index.html | postcraft transform --stats > out.html`,
	Version:       version.String(),
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.Options{
			Debug:  viper.GetBool("debug"),
			Quiet:  viper.GetBool("quiet"),
			JSON:   viper.GetBool("log_json"),
			Output: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.postcraft.yaml or ./.postcraft.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "only log errors")
	flags.Bool("log-json", false, "log as JSON lines")
}

// bindGlobalFlags binds the persistent flags. It runs on every execution so
// a viper.Reset between runs keeps working.
func bindGlobalFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("debug", flags.Lookup("debug"))
	_ = viper.BindPFlag("quiet", flags.Lookup("quiet"))
	_ = viper.BindPFlag("log_json", flags.Lookup("log-json"))
}

func initConfig() {
	bindGlobalFlags()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".postcraft")
		viper.SetConfigType("yaml")
	}

	// Environment variables: POSTCRAFT_ARTICLE_ASSET_ROOT, POSTCRAFT_BUILD_CONCURRENCY, ...
	viper.SetEnvPrefix("POSTCRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// A missing default config file is fine; an explicit one must load.
	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || viper.GetString("config") != "" {
			logger.Warn("failed to read config file", "error", err)
		}
		return
	}
	logger.Debug("using config file", "path", viper.ConfigFileUsed())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
