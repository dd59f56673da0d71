package main

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/propa-engine/internal/climate"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "propa",
		Short:         "ITU-R propagation engine for Earth-space links",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newDemoCmd(), newZonesCmd())
	return root
}

func newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the rain climatic zones accepted by --rain-zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(climate.RainZones(), " "))
			return err
		},
	}
}
