package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"meridian-hq/meridian/pkg/config"
	"meridian-hq/meridian/pkg/config/source"
	"meridian-hq/meridian/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	gitURL    string
	gitBranch string
	gitPath   string
)

var rootCmd = &cobra.Command{
	Use:   "meridian",
	Short: "Meridian - edge HTTP traffic-policy engine",
	Long: `Meridian is an edge HTTP traffic-policy engine providing two pipelines
for proxy data planes:

  - PII redaction of response bodies (credit cards, SSNs, emails, phone
    numbers, custom regex patterns)
  - Priority-ordered routing rule evaluation over request headers, cookies,
    path and query attributes

For more information, visit: https://github.com/meridian-hq/meridian`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := "info"
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(logging.Config{
			Level:  level,
			Format: "text",
			Writer: os.Stderr,
		})
		if err != nil {
			return err
		}
		slog.SetDefault(logger)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "meridian.json", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&gitURL, "config-git-url", "", "fetch configuration from this git repository instead of a local file")
	rootCmd.PersistentFlags().StringVar(&gitBranch, "config-git-branch", "main", "branch to track when fetching configuration from git")
	rootCmd.PersistentFlags().StringVar(&gitPath, "config-git-path", "meridian.json", "configuration file path inside the git repository")
}

// newConfigSource returns the configuration source the global flags select:
// a git worktree when --config-git-url is set, the local --config file
// otherwise.
func newConfigSource() (config.Source, error) {
	if gitURL == "" {
		return source.NewFileSource(cfgFile), nil
	}
	return source.NewGitSource(source.GitConfig{
		URL:    gitURL,
		Branch: gitBranch,
		Path:   gitPath,
	}, slog.Default())
}
