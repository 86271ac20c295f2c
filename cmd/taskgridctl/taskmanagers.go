package main

import (
	"context"

	"github.com/spf13/cobra"
)

func taskManagerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all registered task managers",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client := cliClient()
			doc, err := client.ListTaskManagers(ctx)
			if err != nil {
				return err
			}
			outResult(doc, printTaskManagersTable)
			return nil
		},
	}
}

func taskManagerGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <taskManagerID>",
		Short: "Show one task manager with its metrics snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			client := cliClient()
			doc, err := client.GetTaskManager(ctx, args[0])
			if err != nil {
				return err
			}
			outResult(doc, printTaskManagerDetail)
			return nil
		},
	}
}
