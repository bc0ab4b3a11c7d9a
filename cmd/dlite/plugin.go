package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sintef/dlite-go/internal/storage"
)

var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Inspect registered storage backends",
}

var pluginListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered storage backend names",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := storage.Default().Names()
		if len(names) == 0 {
			fmt.Println("no storage backends registered")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	pluginCmd.AddCommand(pluginListCmd)
}
