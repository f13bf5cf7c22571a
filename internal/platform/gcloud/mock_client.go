package gcloud

import "context"

// MockClient is a mock implementation of CloudManager. Unset Func fields
// fall back to permissive defaults so tests only wire what they assert on.
type MockClient struct {
	CheckProjectIDAvailableFunc func(ctx context.Context, projectID string) (bool, error)
	CreateProjectFunc           func(ctx context.Context, projectID, displayName string) (*Project, error)
	GetProjectFunc              func(ctx context.Context, projectID string) (*Project, error)
	DeleteProjectFunc           func(ctx context.Context, projectID string) error
	ListProjectsFunc            func(ctx context.Context) ([]Project, error)

	EnableServiceFunc func(ctx context.Context, projectID, service string) error

	ListBillingAccountsFunc   func(ctx context.Context) ([]BillingAccount, error)
	TestBillingPermissionFunc func(ctx context.Context, billingAccount, permission string) (bool, error)
	LinkBillingFunc           func(ctx context.Context, projectID, billingAccount string) error

	CreateServiceAccountFunc func(ctx context.Context, projectID, accountID, displayName string) (*ServiceAccount, error)
	GrantRolesFunc           func(ctx context.Context, projectID, member string, roles []string) error
}

// Ensure interface compliance
var _ CloudManager = (*MockClient)(nil)

// CheckProjectIDAvailable mocks the availability probe; available by default.
func (m *MockClient) CheckProjectIDAvailable(ctx context.Context, projectID string) (bool, error) {
	if m.CheckProjectIDAvailableFunc != nil {
		return m.CheckProjectIDAvailableFunc(ctx, projectID)
	}
	return true, nil
}

// CreateProject mocks project creation.
func (m *MockClient) CreateProject(ctx context.Context, projectID, displayName string) (*Project, error) {
	if m.CreateProjectFunc != nil {
		return m.CreateProjectFunc(ctx, projectID, displayName)
	}
	return &Project{ProjectID: projectID, Name: displayName, LifecycleState: "ACTIVE"}, nil
}

// GetProject mocks project retrieval.
func (m *MockClient) GetProject(ctx context.Context, projectID string) (*Project, error) {
	if m.GetProjectFunc != nil {
		return m.GetProjectFunc(ctx, projectID)
	}
	return &Project{ProjectID: projectID, LifecycleState: "ACTIVE"}, nil
}

// DeleteProject mocks project deletion.
func (m *MockClient) DeleteProject(ctx context.Context, projectID string) error {
	if m.DeleteProjectFunc != nil {
		return m.DeleteProjectFunc(ctx, projectID)
	}
	return nil
}

// ListProjects mocks project listing.
func (m *MockClient) ListProjects(ctx context.Context) ([]Project, error) {
	if m.ListProjectsFunc != nil {
		return m.ListProjectsFunc(ctx)
	}
	return nil, nil
}

// EnableService mocks API enablement.
func (m *MockClient) EnableService(ctx context.Context, projectID, service string) error {
	if m.EnableServiceFunc != nil {
		return m.EnableServiceFunc(ctx, projectID, service)
	}
	return nil
}

// ListBillingAccounts mocks billing account listing.
func (m *MockClient) ListBillingAccounts(ctx context.Context) ([]BillingAccount, error) {
	if m.ListBillingAccountsFunc != nil {
		return m.ListBillingAccountsFunc(ctx)
	}
	return nil, nil
}

// TestBillingPermission mocks the permission probe; granted by default.
func (m *MockClient) TestBillingPermission(ctx context.Context, billingAccount, permission string) (bool, error) {
	if m.TestBillingPermissionFunc != nil {
		return m.TestBillingPermissionFunc(ctx, billingAccount, permission)
	}
	return true, nil
}

// LinkBilling mocks billing linkage.
func (m *MockClient) LinkBilling(ctx context.Context, projectID, billingAccount string) error {
	if m.LinkBillingFunc != nil {
		return m.LinkBillingFunc(ctx, projectID, billingAccount)
	}
	return nil
}

// CreateServiceAccount mocks service account creation.
func (m *MockClient) CreateServiceAccount(ctx context.Context, projectID, accountID, displayName string) (*ServiceAccount, error) {
	if m.CreateServiceAccountFunc != nil {
		return m.CreateServiceAccountFunc(ctx, projectID, accountID, displayName)
	}
	return &ServiceAccount{
		Name:        "projects/" + projectID + "/serviceAccounts/" + accountID + "@" + projectID + ".iam.gserviceaccount.com",
		Email:       accountID + "@" + projectID + ".iam.gserviceaccount.com",
		DisplayName: displayName,
	}, nil
}

// GrantRoles mocks IAM role grants.
func (m *MockClient) GrantRoles(ctx context.Context, projectID, member string, roles []string) error {
	if m.GrantRolesFunc != nil {
		return m.GrantRolesFunc(ctx, projectID, member, roles)
	}
	return nil
}
