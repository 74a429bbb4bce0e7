// Package cmd provides the command-line interface for the resume engine.
//
// Configuration System:
//
//	The CLI reads its configuration from several sources with clear precedence:
//	1. Command-line flags (--port, --content, etc.) - highest priority
//	2. Individual environment variables (RESUME_SERVER_PORT, etc.)
//	3. Configuration file (.resume.yml, or the file named by --config or
//	   RESUME_CONFIG_FILE) - lowest priority
//
// Environment Variables:
//
//	RESUME_CONFIG_FILE: Path to a custom configuration file
//	RESUME_SERVER_PORT: Override server port
//	RESUME_CONTENT_ROOT: Override the content directory
//	RESUME_DEVELOPMENT_HOT_RELOAD: Enable or disable live reload
//	And every other key following the RESUME_<SECTION>_<OPTION> pattern
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/elmarvr/resume-v2/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "resume",
	Short: "Render a multilingual resume from a content directory",
	Long: `resume renders a resume from a directory of markdown, JSON, YAML and TOML
files. Documents are validated against schemas, rendered to HTML and served
per locale, with live reload while you edit.

Quick Start:
  resume serve                    Serve the resume with live reload
  resume build -o dist            Write one HTML file per locale
  resume check                    Validate every locale
  resume list "**/*.md"           List content files matching a pattern
  resume preview en/intro.md      Show a content file in the terminal`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is .resume.yml, can also use RESUME_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("content", "content", "content directory")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("content.root", rootCmd.PersistentFlags().Lookup("content"))
}

// initConfig points viper at the configuration file and the environment.
//
// Configuration file lookup (highest to lowest):
//  1. --config flag
//  2. RESUME_CONFIG_FILE environment variable
//  3. .resume.yml in the current directory
//
// A missing file is not an error; defaults apply.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("RESUME_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(config.FileName)
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(config.EnvKeyReplacer())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
