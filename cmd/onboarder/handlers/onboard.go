// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/oauth2"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/config/wizard"
	"github.com/WandLZhang/schare-project-onboarder/internal/platform/gcloud"
	"github.com/WandLZhang/schare-project-onboarder/internal/provisioning"
	"github.com/WandLZhang/schare-project-onboarder/internal/ui/tui"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/prerequisites"
)

// Provisioner interface for testing - matches provisioning.Saga.
type Provisioner interface {
	Provision(ctx context.Context, req provisioning.Request) (*provisioning.Outcome, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// newCloudClient creates a Google Cloud client from an access token.
	newCloudClient = func(token string) gcloud.CloudManager {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
		return gcloud.NewRealClient(source)
	}

	// newSaga creates the provisioning workflow.
	newSaga = func(client gcloud.CloudManager, opts ...provisioning.SagaOption) Provisioner {
		return provisioning.NewSaga(client, opts...)
	}

	// checkDefaultPrereqs runs prerequisite checks.
	checkDefaultPrereqs = prerequisites.CheckDefault

	// loadConfigOrDefault loads config from file (for testing injection).
	loadConfigOrDefault = config.LoadOrDefault

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeConfigFile persists wizard answers (for testing injection).
	writeConfigFile = wizard.WriteConfig

	// runOnboardTUI wraps a provisioning run with the dashboard.
	runOnboardTUI = tui.RunOnboardTUI

	// waitForVisibility polls until the new project shows up in reads.
	waitForVisibility = provisioning.WaitForVisibility

	// isTerminal reports whether stdout is an interactive terminal.
	isTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
)

// OnboardOptions carries the onboard command's flags.
type OnboardOptions struct {
	ConfigPath string
	SaveConfig bool
	NoTUI      bool
}

// Onboard handles the onboard command.
//
// It runs the interactive wizard, provisions the project through the
// compensating workflow, and waits for the new project to become visible
// in read calls before declaring success. The access token is read from
// the environment and passed to the client explicitly; nothing here relies
// on ambient gcloud state.
func Onboard(ctx context.Context, opts OnboardOptions) error {
	if err := checkDefaultPrereqs(); err != nil {
		return err
	}

	cfg, err := loadConfigOrDefault(opts.ConfigPath)
	if err != nil {
		return err
	}

	client := newCloudClient(os.Getenv(prerequisites.TokenEnvVar))

	result, err := runWizard(ctx, client, cfg)
	if err != nil {
		return err
	}

	if opts.SaveConfig {
		if err := saveConfig(result, opts.ConfigPath); err != nil {
			return err
		}
	}

	req := wizard.BuildRequest(result)

	outcome, err := runProvisioning(ctx, client, req, opts.NoTUI)
	if err != nil {
		return err
	}

	return report(ctx, client, outcome)
}

// runProvisioning executes the workflow, with the dashboard when stdout is
// an interactive terminal.
func runProvisioning(ctx context.Context, client gcloud.CloudManager, req provisioning.Request, noTUI bool) (*provisioning.Outcome, error) {
	if noTUI || !isTerminal() {
		saga := newSaga(client)
		return saga.Provision(ctx, req)
	}

	return runOnboardTUI(func(observer provisioning.Observer) (*provisioning.Outcome, error) {
		saga := newSaga(client, provisioning.WithObserver(observer))
		return saga.Provision(ctx, req)
	}, req.ProjectID)
}

// report turns the terminal outcome into the command's exit state. A
// successful run additionally waits for the project to show up in reads.
func report(ctx context.Context, client gcloud.CloudManager, outcome *provisioning.Outcome) error {
	switch outcome.Status {
	case provisioning.StatusSucceeded:
		log.Printf("Project %s is ready", outcome.ProjectID)
		if outcome.ServiceAccountEmail != "" {
			log.Printf("Working service account: %s", outcome.ServiceAccountEmail)
		}
		if err := waitForVisibility(ctx, client, outcome.ProjectID, nil); err != nil {
			// The project exists and is configured; visibility is only
			// about read-after-write lag.
			log.Printf("Warning: %v", err)
		}
		return nil

	case provisioning.StatusRolledBack:
		return fmt.Errorf("provisioning failed and the project was deleted: %w", outcome.Err)

	default:
		return fmt.Errorf("provisioning failed: %w", outcome.Err)
	}
}

// saveConfig persists the wizard answers for the next run.
func saveConfig(result *wizard.Result, configPath string) error {
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}

	if wizard.FileExists(configPath) {
		ok, err := wizard.ConfirmOverwrite(configPath)
		if err != nil {
			return err
		}
		if !ok {
			log.Printf("Keeping existing %s", configPath)
			return nil
		}
	}

	if err := writeConfigFile(wizard.BuildConfig(result), configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	log.Printf("Saved answers to %s", configPath)
	return nil
}
