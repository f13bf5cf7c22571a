package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
)

// ServiceOption represents a Google Cloud API service that can be enabled
// on the new project.
type ServiceOption struct {
	Key         string
	Label       string
	Description string
	Default     bool
}

// CatalogServices contains the API services offered by the wizard.
var CatalogServices = []ServiceOption{
	{Key: "bigquery.googleapis.com", Label: "BigQuery", Description: "SQL analytics over hosted datasets", Default: true},
	{Key: "bigquerystorage.googleapis.com", Label: "BigQuery Storage", Description: "High-throughput dataset reads", Default: true},
	{Key: "storage.googleapis.com", Label: "Cloud Storage", Description: "Object storage buckets", Default: true},
	{Key: "notebooks.googleapis.com", Label: "Notebooks", Description: "Managed Jupyter environments", Default: true},
	{Key: "compute.googleapis.com", Label: "Compute Engine", Description: "Virtual machines (required by Notebooks)", Default: false},
	{Key: "aiplatform.googleapis.com", Label: "Vertex AI", Description: "Model training and prediction", Default: false},
	{Key: "dataflow.googleapis.com", Label: "Dataflow", Description: "Batch and streaming pipelines", Default: false},
}

// RoleOption represents an IAM role that can be granted on the new project.
type RoleOption struct {
	Key         string
	Label       string
	Description string
	Default     bool
}

// CatalogRoles contains the IAM roles offered by the wizard.
var CatalogRoles = []RoleOption{
	{Key: "roles/bigquery.user", Label: "BigQuery User", Description: "Run queries and create datasets", Default: true},
	{Key: "roles/storage.objectViewer", Label: "Storage Object Viewer", Description: "Read objects in buckets", Default: true},
	{Key: "roles/notebooks.runner", Label: "Notebooks Runner", Description: "Use managed notebook runtimes", Default: true},
	{Key: "roles/bigquery.dataEditor", Label: "BigQuery Data Editor", Description: "Write tables and datasets", Default: false},
	{Key: "roles/storage.objectAdmin", Label: "Storage Object Admin", Description: "Full object access in buckets", Default: false},
}

// ServicesToOptions converts the service catalog to huh options.
func ServicesToOptions(services []ServiceOption) []huh.Option[string] {
	opts := make([]huh.Option[string], len(services))
	for i, svc := range services {
		opts[i] = huh.NewOption(svc.Label+" - "+svc.Description, svc.Key)
	}
	return opts
}

// RolesToOptions converts the role catalog to huh options.
func RolesToOptions(roles []RoleOption) []huh.Option[string] {
	opts := make([]huh.Option[string], len(roles))
	for i, role := range roles {
		opts[i] = huh.NewOption(role.Label+" - "+role.Description, role.Key)
	}
	return opts
}

// BillingAccountsToOptions converts billing accounts to huh options.
// Closed accounts are listed but marked, so the user understands why a
// later linkage attempt would fail.
func BillingAccountsToOptions(accounts []gcloud.BillingAccount) []huh.Option[string] {
	opts := make([]huh.Option[string], len(accounts))
	for i, acc := range accounts {
		label := acc.DisplayName + " (" + acc.Name + ")"
		if !acc.Open {
			label += " [closed]"
		}
		opts[i] = huh.NewOption(label, acc.Name)
	}
	return opts
}

// defaultServiceKeys returns the keys of the catalog services selected by
// default.
func defaultServiceKeys() []string {
	var keys []string
	for _, svc := range CatalogServices {
		if svc.Default {
			keys = append(keys, svc.Key)
		}
	}
	return keys
}

// defaultRoleKeys returns the keys of the catalog roles selected by default.
func defaultRoleKeys() []string {
	var keys []string
	for _, role := range CatalogRoles {
		if role.Default {
			keys = append(keys, role.Key)
		}
	}
	return keys
}
