package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sintef/dlite-go/internal/storage/jsonbackend"
)

var entityCmd = &cobra.Command{
	Use:   "entity",
	Short: "Inspect entity files",
}

var entityShowCmd = &cobra.Command{
	Use:   "show <entity-file>",
	Short: "Parse an entity file and print its uri, dimensions and properties",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading entity file: %w", err)
		}

		e, err := jsonbackend.ParseEntityFile(raw)
		if err != nil {
			return fmt.Errorf("parsing entity file: %w", err)
		}

		fmt.Printf("uri:  %s\n", e.URI)
		fmt.Printf("uuid: %s\n", e.UUID)
		if e.Description != "" {
			fmt.Printf("description: %s\n", e.Description)
		}

		fmt.Println("dimensions:")
		for _, d := range e.Dimensions {
			fmt.Printf("  %-16s %s\n", d.Name, d.Description)
		}

		fmt.Println("properties:")
		for _, p := range e.Properties {
			shape := "scalar"
			if p.NDims() > 0 {
				shape = fmt.Sprintf("dims=%v", p.Dims)
			}
			fmt.Printf("  %-16s %-10s %s\n", p.Name, p.Type, shape)
		}
		return nil
	},
}

func init() {
	entityCmd.AddCommand(entityShowCmd)
}
