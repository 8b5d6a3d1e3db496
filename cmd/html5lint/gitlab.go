package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/praetorian-inc/html5lint/pkg/enum"
)

var (
	gitlabOpts    lintOptions
	gitlabToken   string
	gitlabBaseURL string
	gitlabGroup   string
	gitlabUser    string
)

var gitlabCmd = newGitLabCmd()

func newGitLabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gitlab [namespace/project]",
		Short: "Lint GitLab projects",
		Long: `Lint the HTML documents on the default branch of a single project, of
every project of a group and its subgroups (--group) or of a user (--user).
A token is required: use --token or GITLAB_TOKEN.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGitLab,
	}

	addLintFlags(cmd.Flags(), &gitlabOpts)
	cmd.Flags().StringVar(&gitlabToken, "token", "", "GitLab API token (or GITLAB_TOKEN env)")
	cmd.Flags().StringVar(&gitlabBaseURL, "base-url", "", "API URL of a self-managed GitLab instance")
	cmd.Flags().StringVar(&gitlabGroup, "group", "", "Lint all projects of a group")
	cmd.Flags().StringVar(&gitlabUser, "user", "", "Lint all projects of a user")
	return cmd
}

func runGitLab(cmd *cobra.Command, args []string) error {
	token := gitlabToken
	if token == "" {
		token = os.Getenv("GITLAB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("GitLab token required: use --token or GITLAB_TOKEN")
	}

	var project string
	if len(args) > 0 {
		project = args[0]
	}
	if project == "" && gitlabGroup == "" && gitlabUser == "" {
		return fmt.Errorf("must specify namespace/project, --group, or --user")
	}

	cfg, err := gitlabOpts.resolveConfig(cmd.Flags())
	if err != nil {
		return err
	}
	return gitlabOpts.lint(cmd, cfg, func() (enum.Enumerator, error) {
		e, err := enum.NewGitLabEnumerator(enum.GitLabConfig{
			Token:   token,
			BaseURL: gitlabBaseURL,
			Project: project,
			Group:   gitlabGroup,
			User:    gitlabUser,
			Config:  gitlabOpts.enumConfig(cfg, ""),
		})
		if err != nil {
			return nil, fmt.Errorf("creating GitLab client: %w", err)
		}
		return e, nil
	})
}
