package main

import (
	"fmt"
	"os"

	"github.com/dipjudge/adjudicator/cmd/dipadj/root"
)

func main() {
	rootCmd := root.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
