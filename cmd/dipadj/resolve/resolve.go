// Package resolve implements the "resolve" subcommand: adjudicate one
// turn from a trio of JSON fixtures and print the resulting TurnResult.
package resolve

import (
	"encoding/json"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dipjudge/adjudicator/cmd/dipadj/fixture"
	"github.com/dipjudge/adjudicator/pkg/adjudicator"
)

func NewResolveCmd() *cobra.Command {
	var mapPath, statePath, ordersPath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Adjudicate one turn from map/state/orders fixtures and print the TurnResult",
		RunE: func(cmd *cobra.Command, args []string) error {
			mp, err := fixture.LoadMap(mapPath)
			if err != nil {
				return err
			}
			state, err := fixture.LoadState(statePath)
			if err != nil {
				return err
			}
			orders, err := fixture.LoadOrders(ordersPath)
			if err != nil {
				return err
			}

			var result *adjudicator.TurnResult
			if verbose {
				log := zerolog.New(os.Stderr).With().Timestamp().Logger()
				result, err = adjudicator.AdjudicateWithLogging(mp, state, orders, log)
			} else {
				result, err = adjudicator.Adjudicate(mp, state, orders, nil)
			}
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}

	cmd.Flags().StringVar(&mapPath, "map", "", "path to the map fixture")
	cmd.Flags().StringVar(&statePath, "state", "", "path to the game-state fixture")
	cmd.Flags().StringVar(&ordersPath, "orders", "", "path to the orders fixture")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace the solver's decisions to stderr")
	_ = cmd.MarkFlagRequired("map")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("orders")

	return cmd
}
