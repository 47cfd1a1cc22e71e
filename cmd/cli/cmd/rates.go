// Package cmd - rates command
package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"plancost/core/rates"
	"plancost/core/types"
	"plancost/internal/config"
)

var ratesAsOf string

// ratesCmd represents the rates command
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "List the effective rates for every known work item",
	Long: `Resolve and print the rate for every known work item, showing
whether each comes from the configured rate card or the built-in
defaults.

Examples:
  plancost rates
  plancost rates --as-of 2024-06-01`,
	RunE: runRates,
}

func init() {
	ratesCmd.Flags().StringVar(&ratesAsOf, "as-of", "", "rate effective date (YYYY-MM-DD; default today)")
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	asOf := time.Now()
	if ratesAsOf != "" {
		parsed, err := time.Parse("2006-01-02", ratesAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %s", ratesAsOf)
		}
		asOf = parsed
	}

	var card *rates.Card
	if cfg.Rates.CardPath != "" {
		loaded, err := rates.LoadCard(cfg.Rates.CardPath)
		if err != nil {
			return fmt.Errorf("loading rate card: %w", err)
		}
		card = loaded
	}

	defaults := rates.DefaultRateCard()
	resolver := rates.NewResolver(card, defaults, cfg.Rates.Location)

	fmt.Printf("Effective date: %s\n", asOf.Format("2006-01-02"))
	if cfg.Rates.Location != "" {
		fmt.Printf("Location:       %s\n", cfg.Rates.Location)
	}
	fmt.Println()
	fmt.Printf("%-12s %-20s %12s %7s %-8s\n", "CATEGORY", "ITEM", "RATE", "UNIT", "SOURCE")

	categories := make([]types.Category, 0, len(defaults))
	for category := range defaults {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	for _, category := range categories {
		items := make([]string, 0, len(defaults[category]))
		for item := range defaults[category] {
			items = append(items, item)
		}
		sort.Strings(items)

		for _, item := range items {
			rate, source := resolver.RateFor(category, item, asOf)
			fmt.Printf("%-12s %-20s %12s %7s %-8s\n",
				category, item, rate.Rate.StringFixed(2), rate.Unit, source)
		}
	}
	return nil
}
