package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"picodeck/internal/seriallink"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List available serial ports",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ports, err := seriallink.Ports()
		if err != nil {
			return fmt.Errorf("listing ports: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(ports) == 0 {
			fmt.Fprintln(out, "No serial ports found.")
			return nil
		}
		for _, p := range ports {
			fmt.Fprintln(out, p)
		}
		return nil
	},
}
