package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/WandLZhang/schare-project-onboarder/internal/config"
	"github.com/WandLZhang/schare-project-onboarder/internal/util/prerequisites"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
func WriteConfig(cfg *config.Config, outputPath string) error {
	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath string) string {
	return fmt.Sprintf(`# ScHARe onboarder configuration
# Generated by: onboarder onboard
# Generated at: %s
#
# Required environment variable:
#   %s - An OAuth2 access token with project-creation scope
#
# Usage:
#   export %s=$(gcloud auth print-access-token)
#   onboarder onboard -c %s
`, time.Now().Format(time.RFC3339), prerequisites.TokenEnvVar, prerequisites.TokenEnvVar, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
