package config

// Config is the canonical onboarder configuration.
type Config struct {
	// BillingAccount is the billing account new projects are linked to,
	// either the bare ID or the billingAccounts/{id} resource name.
	BillingAccount string `yaml:"billing_account" mapstructure:"billing_account"`

	// ProjectPrefix seeds suggested project IDs ({prefix}-{random}).
	ProjectPrefix string `yaml:"project_prefix,omitempty" mapstructure:"project_prefix"`

	// Services are the API services enabled on every onboarded project,
	// in order.
	Services []string `yaml:"services,omitempty" mapstructure:"services"`

	// Roles are granted to the onboarded user on the new project.
	Roles []string `yaml:"roles,omitempty" mapstructure:"roles"`

	// ServiceAccountID names the working service account created in the
	// project (the part before the @).
	ServiceAccountID string `yaml:"service_account_id,omitempty" mapstructure:"service_account_id"`

	// Grantee is the IAM member receiving the roles, e.g.
	// "user:alice@example.com". Usually supplied per run, not per config.
	Grantee string `yaml:"grantee,omitempty" mapstructure:"grantee"`
}

// DefaultServices are the APIs a ScHARe research project needs out of the box.
func DefaultServices() []string {
	return []string{
		"bigquery.googleapis.com",
		"bigquerystorage.googleapis.com",
		"storage.googleapis.com",
		"notebooks.googleapis.com",
	}
}

// DefaultRoles are granted to the researcher on the new project.
func DefaultRoles() []string {
	return []string{
		"roles/bigquery.user",
		"roles/storage.objectViewer",
		"roles/notebooks.runner",
	}
}

// DefaultServiceAccountID names the working service account.
const DefaultServiceAccountID = "schare-worker"

// Default returns a Config populated with defaults; the billing account and
// grantee still have to come from the user.
func Default() *Config {
	return &Config{
		Services:         DefaultServices(),
		Roles:            DefaultRoles(),
		ServiceAccountID: DefaultServiceAccountID,
	}
}

// applyDefaults fills unset fields after a file load.
func (c *Config) applyDefaults() {
	if len(c.Services) == 0 {
		c.Services = DefaultServices()
	}
	if len(c.Roles) == 0 {
		c.Roles = DefaultRoles()
	}
	if c.ServiceAccountID == "" {
		c.ServiceAccountID = DefaultServiceAccountID
	}
}
