package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"poolTags/internal/subgraph"
)

func runChains(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, id := range subgraph.SupportedChainIDs() {
		tmpl, _ := subgraph.EndpointTemplate(id)
		if _, err := fmt.Fprintf(out, "%s\t%s\n", id, tmpl); err != nil {
			return err
		}
	}
	return nil
}
