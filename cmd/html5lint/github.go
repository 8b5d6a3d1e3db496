package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/enum"
)

var (
	githubOpts    lintOptions
	githubToken   string
	githubBaseURL string
	githubOrg     string
	githubUser    string
)

var githubCmd = newGitHubCmd()

func newGitHubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "github [owner/repo]",
		Short: "Lint GitHub repositories",
		Long: `Lint the HTML documents on the default branch of a single repository
(owner/repo), of every repository of an organization (--org) or of a user
(--user). Files are fetched through the API; nothing is cloned.
No API token is needed for public repositories. Use --token or GITHUB_TOKEN
for private repositories and higher rate limits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGitHub,
	}

	addLintFlags(cmd.Flags(), &githubOpts)
	cmd.Flags().StringVar(&githubToken, "token", "", "GitHub API token (or GITHUB_TOKEN env; optional for public repos)")
	cmd.Flags().StringVar(&githubBaseURL, "base-url", "", "API URL of a GitHub Enterprise server")
	cmd.Flags().StringVar(&githubOrg, "org", "", "Lint all repositories of an organization")
	cmd.Flags().StringVar(&githubUser, "user", "", "Lint all repositories of a user")
	return cmd
}

func runGitHub(cmd *cobra.Command, args []string) error {
	token := githubToken
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		logger.Warn("no GitHub token provided, using unauthenticated access (60 requests/hour, public repos only)")
	}

	var owner, repo string
	if len(args) > 0 {
		parts := splitOwnerRepo(args[0])
		if len(parts) != 2 {
			return fmt.Errorf("invalid repository format, expected owner/repo (e.g., praetorian-inc/html5lint)")
		}
		owner, repo = parts[0], parts[1]
	}
	if repo == "" && githubOrg == "" && githubUser == "" {
		return fmt.Errorf("must specify owner/repo, --org, or --user")
	}

	cfg, err := githubOpts.resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	return githubOpts.lint(cmd, cfg, func() (enum.Enumerator, error) {
		e, err := enum.NewGitHubEnumerator(enum.GitHubConfig{
			Token:   token,
			BaseURL: githubBaseURL,
			Owner:   owner,
			Repo:    repo,
			Org:     githubOrg,
			User:    githubUser,
			Config:  githubOpts.enumConfig(cfg, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("creating GitHub client: %w", err)
		}
		return e, nil
	})
}

// splitOwnerRepo splits "owner/repo" into its parts.
func splitOwnerRepo(s string) []string {
	parts := strings.Split(strings.Trim(s, "/"), "/")
	for _, p := range parts {
		if p == "" {
			return nil
		}
	}
	return parts
}
