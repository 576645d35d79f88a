package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

var (
	searchDomain   string
	searchLocation string
	searchRole     string
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a single profile search and print the results",
	Example: `  founderfinder search --domain Fintech --location Delhi
  founderfinder search -d AI -l Berlin -r CTO`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDomain, "domain", "d", "", "Industry or domain, e.g. Fintech")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "City or country, e.g. Delhi")
	searchCmd.Flags().StringVarP(&searchRole, "role", "r", domain.DefaultRole, "Role to look for")
	_ = searchCmd.MarkFlagRequired("domain")
	_ = searchCmd.MarkFlagRequired("location")
}

func runSearch(cmd *cobra.Command, args []string) error {
	q := domain.NewSearchQuery(searchDomain, searchLocation, searchRole)
	if err := q.Validate(); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer syncLogger(a.Logger)

	res, err := a.Finder.Find(cmd.Context(), q)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Query: %s (%s)\n", res.Query, res.Provider)
	fmt.Fprintf(out, "Found %d profiles:\n", len(res.Profiles))
	for _, p := range res.Profiles {
		fmt.Fprintf(out, "- %s - %s\n", p.Name, p.LinkedInURL)
	}
	return nil
}
