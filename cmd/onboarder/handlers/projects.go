package handlers

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/WandLZhang/schare-project-onboarder/internal/util/prerequisites"
)

// Projects handles the projects command.
//
// It lists the caller's active projects, optionally filtered by ID prefix.
func Projects(ctx context.Context, prefix string) error {
	if err := checkDefaultPrereqs(); err != nil {
		return err
	}

	client := newCloudClient(os.Getenv(prerequisites.TokenEnvVar))

	projects, err := client.ListProjects(ctx)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PROJECT\tNAME\tCREATED")
	count := 0
	for _, p := range projects {
		if prefix != "" && !strings.HasPrefix(p.ProjectID, prefix) {
			continue
		}
		created := ""
		if !p.CreateTime.IsZero() {
			created = p.CreateTime.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.ProjectID, p.Name, created)
		count++
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if count == 0 {
		fmt.Println("No matching projects.")
	}
	return nil
}
