// Package gcloud wraps the Google Cloud REST APIs the onboarder depends on:
// Cloud Resource Manager (projects), Service Usage (API enablement), Cloud
// Billing (accounts, linkage, permission probes), and IAM (service accounts,
// role grants).
//
// All calls are bearer-token-authenticated JSON over HTTPS. The
// [CloudManager] interface is the seam between the provisioning workflow and
// the wire protocol; [RealClient] implements it against the live APIs and
// [MockClient] implements it for tests. Credentials enter exclusively as an
// oauth2.TokenSource passed at construction, never as ambient global state.
package gcloud
