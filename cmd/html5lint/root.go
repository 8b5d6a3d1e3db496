package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/logs"
)

var (
	verbose   bool
	quiet     bool
	logFormat string
	journal   bool

	// logger is set up before any command runs.
	logger = logs.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "html5lint",
	Short: "html5lint - HTML5 style checker",
	Long: `html5lint checks HTML documents against the Google HTML/CSS style guide
and a few rules from html-minifier.

It lints files, directories, git history, archives, GitHub and GitLab
repositories, Azure Blob containers and S3 buckets, and keeps the results
in a store that can be reported on, merged and explored.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (errors only)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	rootCmd.PersistentFlags().BoolVar(&journal, "journal", false, "Also send logs to the systemd journal")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(githubCmd)
	rootCmd.AddCommand(gitlabCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	l, err := logs.New(logs.Options{
		Writer:  cmd.ErrOrStderr(),
		Format:  logFormat,
		Verbose: verbose,
		Quiet:   quiet,
		Journal: journal,
	})
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
