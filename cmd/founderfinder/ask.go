package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <request>",
	Short: "Ask the assistant in free form or with a dictionary-style input",
	Example: `  founderfinder ask "Find founders in Edtech domain based in Mumbai"
  founderfinder ask "{'domain': 'Fintech', 'location': 'Delhi', 'role': 'Founder'}"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer syncLogger(a.Logger)

	res, err := a.Assistant.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Query: %s\n\n", res.Query)
	fmt.Fprint(out, res.Output)
	if !strings.HasSuffix(res.Output, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
