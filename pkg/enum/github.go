package enum

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// GitHubConfig configures GitHub API enumeration.
type GitHubConfig struct {
	Token   string // GitHub API token; empty uses unauthenticated access
	BaseURL string // API root for GitHub Enterprise, defaults to api.github.com
	Owner   string // Repository owner (for single repo)
	Repo    string // Repository name (for single repo)
	Org     string // Organization name (list all org repos)
	User    string // User name (list all user repos)
	Config         // Embedded base config
}

// GitHubEnumerator enumerates HTML files of GitHub repositories through the API.
type GitHubEnumerator struct {
	client *github.Client
	config GitHubConfig
}

// NewGitHubEnumerator creates a new GitHub API enumerator.
func NewGitHubEnumerator(cfg GitHubConfig) (*GitHubEnumerator, error) {
	if cfg.Repo == "" && cfg.Org == "" && cfg.User == "" {
		return nil, fmt.Errorf("must specify repo (with owner), org, or user")
	}

	client := github.NewClient(nil)
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		client = github.NewClient(oauth2.NewClient(context.Background(), ts))
	}
	if cfg.BaseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parsing GitHub base URL: %w", err)
		}
		client.BaseURL = u
	}

	return &GitHubEnumerator{
		client: client,
		config: cfg,
	}, nil
}

// Enumerate yields HTML blobs from the default branch of each repository.
func (e *GitHubEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	repos, err := e.listRepos(ctx)
	if err != nil {
		return err
	}

	for _, repo := range repos {
		if err := e.enumerateRepo(ctx, repo, callback); err != nil {
			return fmt.Errorf("enumerating %s: %w", repo.GetFullName(), err)
		}
	}
	return nil
}

// listRepos returns the list of repositories to enumerate.
func (e *GitHubEnumerator) listRepos(ctx context.Context) ([]*github.Repository, error) {
	if e.config.Repo != "" {
		if e.config.Owner == "" {
			return nil, fmt.Errorf("owner required when repo specified")
		}
		repo, _, err := e.client.Repositories.Get(ctx, e.config.Owner, e.config.Repo)
		if err != nil {
			return nil, fmt.Errorf("getting repository: %w", err)
		}
		return []*github.Repository{repo}, nil
	}

	if e.config.Org != "" {
		opts := &github.RepositoryListByOrgOptions{
			ListOptions: github.ListOptions{PerPage: 100},
		}
		return paginate(func() ([]*github.Repository, *github.Response, error) {
			return e.client.Repositories.ListByOrg(ctx, e.config.Org, opts)
		}, &opts.Page, "listing org repositories")
	}

	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	return paginate(func() ([]*github.Repository, *github.Response, error) {
		return e.client.Repositories.List(ctx, e.config.User, opts)
	}, &opts.Page, "listing user repositories")
}

// paginate calls list until the API reports no next page.
func paginate[T any](list func() ([]T, *github.Response, error), page *int, what string) ([]T, error) {
	var all []T
	for {
		items, resp, err := list()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", what, err)
		}
		all = append(all, items...)
		if resp.NextPage == 0 {
			return all, nil
		}
		*page = resp.NextPage
	}
}

// enumerateRepo walks the recursive tree of the default branch and fetches
// HTML blobs raw.
func (e *GitHubEnumerator) enumerateRepo(ctx context.Context, repo *github.Repository, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	owner, name := repo.GetOwner().GetLogin(), repo.GetName()
	log := e.config.logger()

	branch := repo.GetDefaultBranch()
	if branch == "" {
		branch = "main"
	}

	tree, _, err := e.client.Git.GetTree(ctx, owner, name, branch, true)
	if err != nil {
		return fmt.Errorf("getting tree: %w", err)
	}
	if tree.GetTruncated() {
		log.Warn("repository tree is truncated; clone it and lint with --git for full coverage", "repo", repo.GetFullName())
	}

	for _, entry := range tree.Entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if entry.GetType() != "blob" {
			continue
		}
		if !HasHTMLExtension(entry.GetPath()) && !e.config.SniffContent {
			continue
		}
		if e.config.tooLarge(int64(entry.GetSize())) {
			continue
		}

		data, _, err := e.client.Git.GetBlobRaw(ctx, owner, name, entry.GetSHA())
		if err != nil {
			log.Warn("skipping unreadable blob", "repo", repo.GetFullName(), "path", entry.GetPath(), "error", err)
			continue
		}
		if !e.config.IsHTML(entry.GetPath(), data) {
			continue
		}

		prov := types.RemoteProvenance{
			Provider:   "github",
			Container:  repo.GetFullName(),
			ObjectPath: entry.GetPath(),
			Revision:   branch,
			URL:        fmt.Sprintf("%s/blob/%s/%s", repo.GetHTMLURL(), branch, entry.GetPath()),
		}
		if err := callback(data, types.ComputeBlobID(data), prov); err != nil {
			return err
		}
	}
	return nil
}
