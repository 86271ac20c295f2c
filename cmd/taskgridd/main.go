package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "taskgridd",
	Short: "taskgridd is the taskgrid cluster daemon (head/taskmanager)",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $PWD/taskgridd.yaml)")
	rootCmd.AddCommand(headCmd)
	rootCmd.AddCommand(taskManagerCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
