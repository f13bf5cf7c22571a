package gcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
)

// newTestClient returns a RealClient pointed at the given test server for
// every API family.
func newTestClient(t *testing.T, handler http.Handler) *RealClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewRealClient(nil,
		WithHTTPClient(srv.Client()),
		WithTimeouts(&config.Timeouts{HTTPRequest: 5 * time.Second}),
		WithEndpoints(Endpoints{
			ResourceManager: srv.URL + "/crm/v1",
			ServiceUsage:    srv.URL + "/su/v1",
			Billing:         srv.URL + "/billing/v1",
			IAM:             srv.URL + "/iam/v1",
		}))
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func apiErrorBody(code int, status, message string) map[string]any {
	return map[string]any{
		"error": map[string]any{"code": code, "status": status, "message": message},
	}
}

func TestNewRealClient_KeepsSuppliedHTTPClientUntouched(t *testing.T) {
	t.Parallel()
	shared := &http.Client{}

	client := NewRealClient(nil,
		WithHTTPClient(shared),
		WithTimeouts(&config.Timeouts{HTTPRequest: 5 * time.Second}))

	assert.Same(t, shared, client.httpClient)
	assert.Zero(t, shared.Timeout, "caller-supplied client must keep its own timeout")
}

func TestNewRealClient_DefaultClientGetsConfiguredTimeout(t *testing.T) {
	t.Parallel()
	client := NewRealClient(nil,
		WithTimeouts(&config.Timeouts{HTTPRequest: 7 * time.Second}))

	assert.Equal(t, 7*time.Second, client.httpClient.Timeout)
}

func TestCheckProjectIDAvailable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		status        int
		body          any
		wantAvailable bool
		wantErr       bool
	}{
		{
			name:          "not found means available",
			status:        http.StatusNotFound,
			body:          apiErrorBody(404, "NOT_FOUND", "project not found"),
			wantAvailable: true,
		},
		{
			name:          "forbidden means taken by someone else",
			status:        http.StatusForbidden,
			body:          apiErrorBody(403, "PERMISSION_DENIED", "caller lacks permission"),
			wantAvailable: false,
		},
		{
			name:          "existing project means taken",
			status:        http.StatusOK,
			body:          Project{ProjectID: "taken-id", LifecycleState: "ACTIVE"},
			wantAvailable: false,
		},
		{
			name:    "server error is a transport failure",
			status:  http.StatusInternalServerError,
			body:    apiErrorBody(500, "INTERNAL", "backend error"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/crm/v1/projects/some-id", r.URL.Path)
				writeJSON(t, w, tt.status, tt.body)
			}))

			available, err := c.CheckProjectIDAvailable(context.Background(), "some-id")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, available)
		})
	}
}

func TestCreateProject(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/crm/v1/projects", r.URL.Path)

		var body Project
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "schare-abc123", body.ProjectID)
		assert.Equal(t, "My Research Project", body.Name)

		// v1 returns an operation envelope, not the project
		writeJSON(t, w, http.StatusOK, map[string]any{"name": "operations/cp.123"})
	}))

	p, err := c.CreateProject(context.Background(), "schare-abc123", "My Research Project")

	require.NoError(t, err)
	assert.Equal(t, "schare-abc123", p.ProjectID)
}

func TestDeleteProject_Error(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		writeJSON(t, w, http.StatusForbidden, apiErrorBody(403, "PERMISSION_DENIED", "cannot delete"))
	}))

	err := c.DeleteProject(context.Background(), "schare-abc123")

	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
	assert.Contains(t, err.Error(), "schare-abc123")
}

func TestListProjects_Pagination(t *testing.T) {
	t.Parallel()
	calls := 0
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "lifecycleState:ACTIVE", r.URL.Query().Get("filter"))
		if r.URL.Query().Get("pageToken") == "" {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"projects":      []Project{{ProjectID: "p1"}},
				"nextPageToken": "tok",
			})
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"projects": []Project{{ProjectID: "p2"}},
		})
	}))

	projects, err := c.ListProjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, projects, 2)
	assert.Equal(t, "p1", projects[0].ProjectID)
	assert.Equal(t, "p2", projects[1].ProjectID)
}

func TestEnableService(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/su/v1/projects/p1/services/bigquery.googleapis.com:enable", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{"name": "operations/su.1"})
	}))

	require.NoError(t, c.EnableService(context.Background(), "p1", "bigquery.googleapis.com"))
}

func TestListBillingAccounts(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/billing/v1/billingAccounts", r.URL.Path)
		writeJSON(t, w, http.StatusOK, map[string]any{
			"billingAccounts": []BillingAccount{
				{Name: "billingAccounts/0A0A0A-0B0B0B-0C0C0C", DisplayName: "Research", Open: true},
				{Name: "billingAccounts/1D1D1D-1E1E1E-1F1F1F", DisplayName: "Closed", Open: false},
			},
		})
	}))

	accounts, err := c.ListBillingAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.True(t, accounts[0].Open)
}

func TestTestBillingPermission(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		returned []string
		want     bool
	}{
		{name: "granted", returned: []string{"billing.resourceAssociations.create"}, want: true},
		{name: "absent", returned: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/billing/v1/billingAccounts/0A0A0A-0B0B0B-0C0C0C:testIamPermissions", r.URL.Path)
				writeJSON(t, w, http.StatusOK, map[string]any{"permissions": tt.returned})
			}))

			// Bare account ID gets normalized to the resource name.
			granted, err := c.TestBillingPermission(context.Background(),
				"0A0A0A-0B0B0B-0C0C0C", "billing.resourceAssociations.create")

			require.NoError(t, err)
			assert.Equal(t, tt.want, granted)
		})
	}
}

func TestLinkBilling(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/billing/v1/projects/p1/billingInfo", r.URL.Path)

		var body BillingInfo
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "billingAccounts/0A0A0A-0B0B0B-0C0C0C", body.BillingAccountName)

		writeJSON(t, w, http.StatusOK, body)
	}))

	require.NoError(t, c.LinkBilling(context.Background(), "p1", "0A0A0A-0B0B0B-0C0C0C"))
}

func TestLinkBilling_EmptyAccountRejectedLocally(t *testing.T) {
	t.Parallel()
	called := false
	c := newTestClient(t, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	err := c.LinkBilling(context.Background(), "p1", "")

	require.Error(t, err)
	assert.False(t, called, "unlink must never be sent")
}

func TestCreateServiceAccount(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/iam/v1/projects/p1/serviceAccounts", r.URL.Path)

		var body struct {
			AccountID      string `json:"accountId"`
			ServiceAccount struct {
				DisplayName string `json:"displayName"`
			} `json:"serviceAccount"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "schare-worker", body.AccountID)

		writeJSON(t, w, http.StatusOK, ServiceAccount{
			Email: "schare-worker@p1.iam.gserviceaccount.com",
		})
	}))

	sa, err := c.CreateServiceAccount(context.Background(), "p1", "schare-worker", "ScHARe worker")

	require.NoError(t, err)
	assert.Equal(t, "schare-worker@p1.iam.gserviceaccount.com", sa.Email)
}

func TestGrantRoles_ReadModifyWrite(t *testing.T) {
	t.Parallel()
	var setPolicy *iamPolicy
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crm/v1/projects/p1:getIamPolicy":
			writeJSON(t, w, http.StatusOK, iamPolicy{
				Etag: "etag-1",
				Bindings: []iamBinding{
					{Role: "roles/owner", Members: []string{"user:owner@example.com"}},
					{Role: "roles/bigquery.user", Members: []string{"user:alice@example.com"}},
				},
			})
		case "/crm/v1/projects/p1:setIamPolicy":
			var body struct {
				Policy *iamPolicy `json:"policy"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			setPolicy = body.Policy
			writeJSON(t, w, http.StatusOK, body.Policy)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	err := c.GrantRoles(context.Background(), "p1", "user:alice@example.com",
		[]string{"roles/bigquery.user", "roles/storage.objectViewer"})

	require.NoError(t, err)
	require.NotNil(t, setPolicy)
	assert.Equal(t, "etag-1", setPolicy.Etag)
	// Existing binding untouched, new one appended.
	require.Len(t, setPolicy.Bindings, 3)
	assert.Equal(t, []string{"user:alice@example.com"}, setPolicy.Bindings[2].Members)
	assert.Equal(t, "roles/storage.objectViewer", setPolicy.Bindings[2].Role)
}

func TestGrantRoles_NoChangeSkipsWrite(t *testing.T) {
	t.Parallel()
	setCalled := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/crm/v1/projects/p1:getIamPolicy":
			writeJSON(t, w, http.StatusOK, iamPolicy{
				Bindings: []iamBinding{
					{Role: "roles/bigquery.user", Members: []string{"user:alice@example.com"}},
				},
			})
		case "/crm/v1/projects/p1:setIamPolicy":
			setCalled = true
			writeJSON(t, w, http.StatusOK, map[string]any{})
		}
	}))

	err := c.GrantRoles(context.Background(), "p1", "user:alice@example.com", []string{"roles/bigquery.user"})

	require.NoError(t, err)
	assert.False(t, setCalled)
}
