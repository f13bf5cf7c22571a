// Package wizard provides the interactive project onboarding wizard.
//
// This package implements a TUI-based wizard that guides researchers
// through setting up a new Google Cloud project. It uses charmbracelet/huh
// for form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a Result. Use BuildRequest to convert results to a
// provisioning.Request, and WriteConfig to persist reusable answers as a
// YAML config file.
package wizard
