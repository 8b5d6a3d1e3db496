package enum

import (
	"context"
	"fmt"

	"gitlab.com/gitlab-org/api/client-go"

	"github.com/praetorian-inc/html5lint/pkg/types"
)

// GitLabConfig for GitLab API enumeration.
type GitLabConfig struct {
	Token   string
	BaseURL string // Optional, defaults to gitlab.com
	Project string // Single project path (namespace/project)
	Group   string // Group name (optional)
	User    string // User name (optional)
	Config         // Embedded base Config
}

// GitLabEnumerator enumerates HTML files of GitLab projects via the API.
type GitLabEnumerator struct {
	client *gitlab.Client
	config GitLabConfig
}

// NewGitLabEnumerator creates a new GitLab enumerator.
func NewGitLabEnumerator(cfg GitLabConfig) (*GitLabEnumerator, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}
	if cfg.Project == "" && cfg.Group == "" && cfg.User == "" {
		return nil, fmt.Errorf("must specify project, group, or user")
	}

	var opts []gitlab.ClientOptionFunc
	if cfg.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
	}
	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	return &GitLabEnumerator{client: client, config: cfg}, nil
}

// Enumerate walks GitLab projects and yields HTML blobs of their default branch.
func (e *GitLabEnumerator) Enumerate(ctx context.Context, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	projects, err := e.listProjects(ctx)
	if err != nil {
		return err
	}

	for _, project := range projects {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := e.enumerateProject(ctx, project, callback); err != nil {
			return fmt.Errorf("enumerating %s: %w", project.PathWithNamespace, err)
		}
	}
	return nil
}

// listProjects returns the list of projects to enumerate.
func (e *GitLabEnumerator) listProjects(ctx context.Context) ([]*gitlab.Project, error) {
	if e.config.Project != "" {
		project, _, err := e.client.Projects.GetProject(e.config.Project, nil, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("getting project: %w", err)
		}
		return []*gitlab.Project{project}, nil
	}

	var all []*gitlab.Project
	if e.config.Group != "" {
		opts := &gitlab.ListGroupProjectsOptions{
			ListOptions:      gitlab.ListOptions{PerPage: 100},
			IncludeSubGroups: gitlab.Ptr(true),
		}
		for {
			projects, resp, err := e.client.Groups.ListGroupProjects(e.config.Group, opts, gitlab.WithContext(ctx))
			if err != nil {
				return nil, fmt.Errorf("listing group projects: %w", err)
			}
			all = append(all, projects...)
			if resp.NextPage == 0 {
				return all, nil
			}
			opts.Page = resp.NextPage
		}
	}

	opts := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
		Owned:       gitlab.Ptr(true),
	}
	for {
		projects, resp, err := e.client.Projects.ListUserProjects(e.config.User, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("listing user projects: %w", err)
		}
		all = append(all, projects...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// enumerateProject walks a single project's file tree.
func (e *GitLabEnumerator) enumerateProject(ctx context.Context, project *gitlab.Project, callback func(content []byte, blobID types.BlobID, prov types.Provenance) error) error {
	log := e.config.logger()
	opts := &gitlab.ListTreeOptions{
		Recursive:   gitlab.Ptr(true),
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	if project.DefaultBranch != "" {
		opts.Ref = gitlab.Ptr(project.DefaultBranch)
	}

	var paths []string
	for {
		nodes, resp, err := e.client.Repositories.ListTree(project.ID, opts, gitlab.WithContext(ctx))
		if err != nil {
			return fmt.Errorf("listing tree: %w", err)
		}
		for _, node := range nodes {
			if node.Type != "blob" {
				continue
			}
			if HasHTMLExtension(node.Path) || e.config.SniffContent {
				paths = append(paths, node.Path)
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rawOpts := &gitlab.GetRawFileOptions{}
		if project.DefaultBranch != "" {
			rawOpts.Ref = gitlab.Ptr(project.DefaultBranch)
		}
		content, _, err := e.client.RepositoryFiles.GetRawFile(project.ID, path, rawOpts, gitlab.WithContext(ctx))
		if err != nil {
			log.Warn("skipping unreadable file", "project", project.PathWithNamespace, "path", path, "error", err)
			continue
		}
		if e.config.tooLarge(int64(len(content))) || !e.config.IsHTML(path, content) {
			continue
		}

		prov := types.RemoteProvenance{
			Provider:   "gitlab",
			Container:  project.PathWithNamespace,
			ObjectPath: path,
			Revision:   project.DefaultBranch,
			URL:        fmt.Sprintf("%s/-/blob/%s/%s", project.WebURL, project.DefaultBranch, path),
		}
		if err := callback(content, types.ComputeBlobID(content), prov); err != nil {
			return err
		}
	}
	return nil
}
