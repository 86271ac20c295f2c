package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	apiURL     string
	apiToken   string
	outputJSON bool
	timeout    time.Duration
)

func main() {
	root := &cobra.Command{
		Use:   "taskgridctl",
		Short: "taskgrid monitoring/admin CLI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if apiURL == "" || apiToken == "" {
				return fmt.Errorf("--api-url and --api-token are required")
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api-url", os.Getenv("TASKGRID_API_URL"), "API URL (or $TASKGRID_API_URL)")
	root.PersistentFlags().StringVar(&apiToken, "api-token", os.Getenv("TASKGRID_API_TOKEN"), "API token (or $TASKGRID_API_TOKEN)")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 15*time.Second, "API request timeout")
	root.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output as JSON")

	// Task managers
	taskManagers := &cobra.Command{Use: "taskmanager", Short: "Task manager nodes"}
	taskManagers.AddCommand(
		taskManagerListCmd(),
		taskManagerGetCmd(),
	)
	root.AddCommand(taskManagers)

	// Cluster status
	root.AddCommand(clusterStatusCmd())

	_ = root.Execute()
}
