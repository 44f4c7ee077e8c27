package root

import (
	"github.com/spf13/cobra"

	"github.com/dipjudge/adjudicator/cmd/dipadj/graph"
	"github.com/dipjudge/adjudicator/cmd/dipadj/resolve"
)

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dipadj",
		Short: "dipadj resolves Diplomacy turns against fixture files",
		Long: `dipadj is a small driver around the adjudication core.
It reads a map, a game state and a set of orders from JSON fixtures and
prints the resulting TurnResult.`,
	}

	rootCmd.AddCommand(resolve.NewResolveCmd())
	rootCmd.AddCommand(graph.NewGraphCmd())

	return rootCmd
}
