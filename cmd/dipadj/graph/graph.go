// Package graph implements the "graph" subcommand: render a map fixture's
// adjacency graph as Graphviz source, for eyeballing a map file's shape.
package graph

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dipjudge/adjudicator/cmd/dipadj/fixture"
)

func NewGraphCmd() *cobra.Command {
	var mapPath string

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print a map fixture's adjacency graph as Graphviz DOT",
		RunE: func(cmd *cobra.Command, args []string) error {
			mp, err := fixture.LoadMap(mapPath)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), mp.DOT())
			return nil
		},
	}

	cmd.Flags().StringVar(&mapPath, "map", "", "path to the map fixture")
	_ = cmd.MarkFlagRequired("map")

	return cmd
}
