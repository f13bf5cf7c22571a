package gcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CheckProjectIDAvailable reports whether the project ID can still be
// claimed. Project IDs are globally unique: a GET that returns 404 means the
// ID is free, a 403 means it belongs to someone else (and so is also a valid
// "taken" signal for our caller to reject), and a 200 means it exists.
// Any other failure is a transport error, not an availability answer.
func (c *RealClient) CheckProjectIDAvailable(ctx context.Context, projectID string) (bool, error) {
	_, err := c.GetProject(ctx, projectID)
	switch {
	case err == nil:
		return false, nil
	case IsNotFound(err):
		return true, nil
	case IsPermissionDenied(err):
		return false, nil
	default:
		return false, fmt.Errorf("availability check failed: %w", err)
	}
}

// CreateProject creates a new project. The call returns once the resource
// manager has accepted the request; IAM propagation lags behind, which the
// provisioning workflow accounts for separately.
func (c *RealClient) CreateProject(ctx context.Context, projectID, displayName string) (*Project, error) {
	in := &Project{
		ProjectID: projectID,
		Name:      displayName,
	}
	var out Project
	url := c.endpoints.ResourceManager + "/projects"
	if err := c.do(ctx, http.MethodPost, url, in, &out); err != nil {
		return nil, fmt.Errorf("failed to create project %q: %w", projectID, err)
	}
	if out.ProjectID == "" {
		// The v1 create call returns a long-running operation envelope
		// rather than the project itself.
		out.ProjectID = projectID
		out.Name = displayName
	}
	return &out, nil
}

// GetProject fetches a single project by ID.
func (c *RealClient) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var out Project
	url := fmt.Sprintf("%s/projects/%s", c.endpoints.ResourceManager, projectID)
	if err := c.do(ctx, http.MethodGet, url, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject requests deletion of a project. The project enters the
// DELETE_REQUESTED state and is purged after the grace period.
func (c *RealClient) DeleteProject(ctx context.Context, projectID string) error {
	url := fmt.Sprintf("%s/projects/%s", c.endpoints.ResourceManager, projectID)
	if err := c.do(ctx, http.MethodDelete, url, nil, nil); err != nil {
		return fmt.Errorf("failed to delete project %q: %w", projectID, err)
	}
	return nil
}

// ListProjects returns all ACTIVE projects visible to the caller.
func (c *RealClient) ListProjects(ctx context.Context) ([]Project, error) {
	var projects []Project
	pageToken := ""

	for {
		q := url.Values{}
		q.Set("filter", "lifecycleState:ACTIVE")
		if pageToken != "" {
			q.Set("pageToken", pageToken)
		}

		var page struct {
			Projects      []Project `json:"projects"`
			NextPageToken string    `json:"nextPageToken"`
		}
		u := c.endpoints.ResourceManager + "/projects?" + q.Encode()
		if err := c.do(ctx, http.MethodGet, u, nil, &page); err != nil {
			return nil, fmt.Errorf("failed to list projects: %w", err)
		}

		projects = append(projects, page.Projects...)
		if page.NextPageToken == "" {
			return projects, nil
		}
		pageToken = page.NextPageToken
	}
}
