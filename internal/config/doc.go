// Package config defines the onboarder configuration model.
//
// The [Config] struct captures the defaults an organization bakes into its
// onboarding flow: which billing account to link, which API services every
// research project needs, which roles the researcher receives, and how the
// working service account is named. It is loaded from onboarder.yaml or
// assembled by the interactive wizard. Tunable durations live in [Timeouts]
// and come from ONBOARDER_* environment variables.
package config
