package gcloud

import (
	"context"
	"time"
)

// Project is a Cloud Resource Manager project.
type Project struct {
	ProjectID      string    `json:"projectId"`
	ProjectNumber  string    `json:"projectNumber,omitempty"`
	Name           string    `json:"name"`
	LifecycleState string    `json:"lifecycleState,omitempty"`
	CreateTime     time.Time `json:"createTime,omitempty"`
}

// Active reports whether the project is in the ACTIVE lifecycle state.
func (p *Project) Active() bool {
	return p.LifecycleState == "ACTIVE"
}

// BillingAccount is a Cloud Billing account the caller can see.
type BillingAccount struct {
	// Name is the resource name, billingAccounts/{id}.
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Open        bool   `json:"open"`
}

// BillingInfo describes the billing state of a project.
type BillingInfo struct {
	Name               string `json:"name,omitempty"`
	ProjectID          string `json:"projectId,omitempty"`
	BillingAccountName string `json:"billingAccountName"`
	BillingEnabled     bool   `json:"billingEnabled,omitempty"`
}

// ServiceAccount is an IAM service account in a project.
type ServiceAccount struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	UniqueID    string `json:"uniqueId,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Disabled    bool   `json:"disabled,omitempty"`
}

// CloudManager defines the Google Cloud operations used by the onboarder.
// The provisioning workflow treats every method as an opaque remote call
// that either succeeds or fails; no retries happen at this layer.
type CloudManager interface {
	// Projects (Cloud Resource Manager)
	CheckProjectIDAvailable(ctx context.Context, projectID string) (bool, error)
	CreateProject(ctx context.Context, projectID, displayName string) (*Project, error)
	GetProject(ctx context.Context, projectID string) (*Project, error)
	DeleteProject(ctx context.Context, projectID string) error
	ListProjects(ctx context.Context) ([]Project, error)

	// Services (Service Usage)
	EnableService(ctx context.Context, projectID, service string) error

	// Billing (Cloud Billing)
	ListBillingAccounts(ctx context.Context) ([]BillingAccount, error)
	TestBillingPermission(ctx context.Context, billingAccount, permission string) (bool, error)
	LinkBilling(ctx context.Context, projectID, billingAccount string) error

	// IAM
	CreateServiceAccount(ctx context.Context, projectID, accountID, displayName string) (*ServiceAccount, error)
	GrantRoles(ctx context.Context, projectID, member string, roles []string) error
}
