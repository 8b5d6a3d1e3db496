package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/praetorian-inc/html5lint"
	"github.com/praetorian-inc/html5lint/pkg/config"
	"github.com/praetorian-inc/html5lint/pkg/enum"
	"github.com/praetorian-inc/html5lint/pkg/rule"
	"github.com/praetorian-inc/html5lint/pkg/store"
	"github.com/praetorian-inc/html5lint/pkg/types"
)

// lintOptions holds the flags shared by every command that lints.
type lintOptions struct {
	disable         string
	ruleset         string
	format          string
	output          string
	sniff           bool
	maxFileSize     int64
	workers         int
	force           bool
	exitZero        bool
	color           string
	configPath      string
	extractArchives bool
	stripTemplates  bool
}

// lintFailedError is returned when Error severity messages were reported.
// The messages themselves are the report, so nothing more is printed.
type lintFailedError struct {
	errors int
}

func (e *lintFailedError) Error() string {
	return fmt.Sprintf("%d error messages", e.errors)
}

var (
	lintOpts lintOptions

	lintGit                   bool
	lintGitAll                bool
	lintIncludeHidden         bool
	lintAzureContainer        string
	lintAzureConnectionString string
	lintAzurePrefix           string
	lintS3Bucket              string
	lintS3Prefix              string
	lintS3Endpoint            string
	lintS3Region              string
)

var lintCmd = newLintCmd()

// newLintCmd builds the lint command. Its flags are bound to the package
// level lint variables, which are reset to their defaults.
func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "lint [path...]",
		Aliases: []string{"scan"},
		Short:   "Lint HTML documents",
		Long: `Lint HTML files, directories or git repositories. A single "-" reads
one document from standard input. Without a path the working directory is
linted, unless an Azure container or S3 bucket is given.

The exit code is 1 when an Error severity message is reported.`,
		RunE: runLint,
	}

	addLintFlags(cmd.Flags(), &lintOpts)

	cmd.Flags().BoolVar(&lintGit, "git", false, "Lint every HTML blob reachable from HEAD instead of the working tree")
	cmd.Flags().BoolVar(&lintGitAll, "git-all", false, "With --git, walk the history of every ref")
	cmd.Flags().BoolVar(&lintIncludeHidden, "include-hidden", false, "Include hidden files and directories")
	cmd.Flags().StringVar(&lintAzureContainer, "azure-container", "", "Lint the HTML blobs of an Azure Blob container")
	cmd.Flags().StringVar(&lintAzureConnectionString, "azure-connection-string", "", "Azure Storage connection string (or AZURE_STORAGE_CONNECTION_STRING env)")
	cmd.Flags().StringVar(&lintAzurePrefix, "azure-prefix", "", "Only lint blobs under this prefix")
	cmd.Flags().StringVar(&lintS3Bucket, "s3-bucket", "", "Lint the HTML objects of an S3 bucket")
	cmd.Flags().StringVar(&lintS3Prefix, "s3-prefix", "", "Only lint objects under this prefix")
	cmd.Flags().StringVar(&lintS3Endpoint, "s3-endpoint", "", "Custom S3 endpoint, e.g. for MinIO")
	cmd.Flags().StringVar(&lintS3Region, "s3-region", "", "AWS region of the bucket")
	return cmd
}

// addLintFlags registers the flags of lintOptions on fs.
func addLintFlags(fs *pflag.FlagSet, o *lintOptions) {
	fs.StringVar(&o.disable, "disable", "", "Comma-separated checks to disable (see 'rules list')")
	fs.StringVar(&o.ruleset, "ruleset", "", "Only run the checks of a built-in ruleset")
	fs.StringVar(&o.format, "format", "human", "Output format: human, text, json, sarif")
	fs.StringVar(&o.output, "output", store.MemoryPath, "Result store: :memory:, a SQLite file or a postgres:// URL")
	fs.BoolVar(&o.sniff, "sniff", false, "Also lint files without an HTML extension that look like HTML")
	fs.Int64Var(&o.maxFileSize, "max-file-size", 10*1024*1024, "Maximum document size to lint (bytes)")
	fs.IntVar(&o.workers, "workers", 0, "Files read and linted at once (0 = one per CPU)")
	fs.BoolVar(&o.force, "force", false, "Lint documents already in the result store again")
	fs.BoolVar(&o.exitZero, "exit-zero", false, "Exit with 0 even when errors are reported")
	fs.StringVar(&o.color, "color", "auto", "Color output: auto, always, never")
	fs.StringVar(&o.configPath, "config", "", "Configuration file (default ./"+config.FileName+" when present)")
	fs.BoolVar(&o.extractArchives, "extract-archives", false, "Lint HTML members of zip, epub, jar and 7z archives")
	fs.BoolVar(&o.stripTemplates, "strip-templates", false, "Remove template directives such as {{ x }} before linting")
}

// resolveConfig applies the precedence flags > config file > defaults.
func (o *lintOptions) resolveConfig(fs *pflag.FlagSet) (config.Config, error) {
	file, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}

	var flags config.Config
	if fs.Changed("disable") {
		flags.Disable = []string{o.disable}
	}
	if fs.Changed("ruleset") {
		flags.Ruleset = o.ruleset
	}
	if fs.Changed("format") {
		flags.Format = o.format
	}
	if fs.Changed("sniff") {
		flags.Sniff = &o.sniff
	}
	if fs.Changed("max-file-size") {
		flags.MaxFileSize = o.maxFileSize
	}
	if fs.Changed("extract-archives") {
		flags.ExtractArchives = &o.extractArchives
	}
	if fs.Changed("color") {
		flags.Color = o.color
	}

	cfg := config.Default().Merge(file).Merge(flags)
	if err := cfg.Validate(); err != nil {
		var unknown []string
		for _, d := range cfg.Disable {
			unknown = append(unknown, unknownChecks(d)...)
		}
		if len(unknown) > 0 {
			return config.Config{}, fmt.Errorf("Invalid --disable arguments: %s", strings.Join(unknown, ", "))
		}
		return config.Config{}, err
	}
	return cfg, nil
}

// unknownChecks returns the names of a --disable list that are not checks.
func unknownChecks(names string) []string {
	var unknown []string
	for _, name := range rule.ParsePatterns(names) {
		if _, ok := types.ParseKind(name); !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// newLinter builds the linter described by cfg.
func (o *lintOptions) newLinter(cfg config.Config) (*html5lint.Linter, error) {
	opts := []html5lint.Option{
		html5lint.WithDisabled(cfg.Disable...),
		html5lint.WithLogger(logger),
	}
	if cfg.Ruleset != "" {
		opts = append(opts, html5lint.WithRuleset(cfg.Ruleset))
	}
	if o.stripTemplates {
		opts = append(opts, html5lint.WithTemplateStripping())
	}
	return html5lint.NewLinter(opts...)
}

// enumConfig returns the enumeration settings of cfg for root.
func (o *lintOptions) enumConfig(cfg config.Config, root string) enum.Config {
	return enum.Config{
		Root:            root,
		MaxFileSize:     cfg.MaxFileSize,
		SniffContent:    cfg.SniffEnabled(),
		ExtractArchives: cfg.ArchivesEnabled(),
		ExcludePaths:    cfg.ExcludePaths,
		Workers:         o.workers,
		Logger:          logger,
	}
}

// lint runs e through the linter, stores and reports the results.
func (o *lintOptions) lint(cmd *cobra.Command, cfg config.Config, build func() (enum.Enumerator, error)) error {
	l, err := o.newLinter(cfg)
	if err != nil {
		return err
	}

	e, err := build()
	if err != nil {
		return err
	}

	s, err := store.New(store.Config{Path: o.output})
	if err != nil {
		return fmt.Errorf("creating store: %w", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p := newPipeline(l, s, o.force)
	results, err := p.run(ctx, e)
	if err != nil {
		return fmt.Errorf("linting: %w", err)
	}

	sum := summarize(results)
	logger.Info("lint complete",
		"documents", sum.Documents,
		"messages", sum.Messages,
		"errors", sum.Errors,
		"skipped", p.skipped,
		"store", o.output)

	if err := writeResults(cmd.OutOrStdout(), cfg.Format, cfg.Color, results, l.Checks()); err != nil {
		return err
	}

	if sum.Errors > 0 && !o.exitZero {
		return &lintFailedError{errors: sum.Errors}
	}
	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	cfg, err := lintOpts.resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	return lintOpts.lint(cmd, cfg, func() (enum.Enumerator, error) {
		return buildEnumerator(cmd, args, cfg)
	})
}

// buildEnumerator turns the path arguments and source flags into one
// enumerator.
func buildEnumerator(cmd *cobra.Command, args []string, cfg config.Config) (enum.Enumerator, error) {
	if len(args) == 1 && args[0] == enum.StdinPath {
		return enum.NewReaderEnumerator(cmd.InOrStdin(), enum.StdinPath), nil
	}

	remote := lintAzureContainer != "" || lintS3Bucket != ""
	if len(args) == 0 && !remote {
		args = []string{"."}
	}

	var enumerators []enum.Enumerator
	for _, path := range args {
		if path == enum.StdinPath {
			return nil, errors.New("standard input (-) cannot be combined with other paths")
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("target does not exist: %s", path)
		}

		ec := lintOpts.enumConfig(cfg, path)
		ec.IncludeHidden = lintIncludeHidden
		if lintGit {
			g := enum.NewGitEnumerator(ec)
			g.WalkAll = lintGitAll
			enumerators = append(enumerators, g)
		} else {
			enumerators = append(enumerators, enum.NewFilesystemEnumerator(ec))
		}
	}

	if lintAzureContainer != "" {
		conn := lintAzureConnectionString
		if conn == "" {
			conn = os.Getenv("AZURE_STORAGE_CONNECTION_STRING")
		}
		if conn == "" {
			return nil, errors.New("--azure-container requires --azure-connection-string or AZURE_STORAGE_CONNECTION_STRING")
		}
		az, err := enum.NewAzureEnumerator(enum.AzureConfig{
			ConnectionString: conn,
			Container:        lintAzureContainer,
			Prefix:           lintAzurePrefix,
			Config:           lintOpts.enumConfig(cfg, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("creating Azure client: %w", err)
		}
		enumerators = append(enumerators, az)
	}

	if lintS3Bucket != "" {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		s3e, err := enum.NewS3Enumerator(ctx, enum.S3Config{
			Bucket:   lintS3Bucket,
			Prefix:   lintS3Prefix,
			Region:   lintS3Region,
			Endpoint: lintS3Endpoint,
			Config:   lintOpts.enumConfig(cfg, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		enumerators = append(enumerators, s3e)
	}

	if len(enumerators) == 1 {
		return enumerators[0], nil
	}
	return enum.NewCombinedEnumerator(enumerators...).WithLogger(logger), nil
}
