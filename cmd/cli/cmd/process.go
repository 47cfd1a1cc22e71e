// Package cmd - process command
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"plancost/adapters/storage"
	"plancost/core/estimate"
	"plancost/core/output"
	"plancost/core/pipeline"
	"plancost/core/rates"
	"plancost/core/types"
	"plancost/internal/config"
)

var (
	processUnit   string
	processMode   string
	processFormat string
	keepSmall     bool
	showRows      bool
	asOfDate      string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process a DXF floor plan into rooms and a cost estimate",
	Long: `Parse a DXF drawing, extract and classify its rooms, and produce
either a material summary or a detailed priced estimate.

Re-processing a drawing replaces all of its previously stored rooms
and estimates.

Examples:
  plancost process floorplan.dxf
  plancost process --unit mm floorplan.dxf
  plancost process --mode detailed --as-of 2024-06-01 floorplan.dxf
  plancost process --format json floorplan.dxf`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processUnit, "unit", "u", "", "drawing unit (mm, cm, m; default auto-detect)")
	processCmd.Flags().StringVarP(&processMode, "mode", "m", "summary", "estimate mode (summary, detailed)")
	processCmd.Flags().StringVarP(&processFormat, "format", "f", "", "output format (cli, json)")
	processCmd.Flags().BoolVar(&keepSmall, "keep-small", false, "keep rooms below the minimum area")
	processCmd.Flags().BoolVar(&showRows, "rows", false, "show per-room rows in summary output")
	processCmd.Flags().StringVar(&asOfDate, "as-of", "", "rate effective date (YYYY-MM-DD; default today)")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	path := args[0]

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}

	cfg := config.Get()

	opts := pipeline.Options{KeepSmall: keepSmall}

	switch processMode {
	case "summary":
		opts.Mode = types.ModeSummary
	case "detailed":
		opts.Mode = types.ModeDetailed
	default:
		return fmt.Errorf("unknown mode: %s", processMode)
	}

	opts.UnitHint = cfg.Pipeline.DefaultUnit
	if processUnit != "" {
		opts.UnitHint = types.Unit(processUnit)
	}

	if asOfDate != "" {
		asOf, err := time.Parse("2006-01-02", asOfDate)
		if err != nil {
			return fmt.Errorf("invalid --as-of date: %s", asOfDate)
		}
		opts.AsOf = asOf
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	pipe := pipeline.New(engine, store, cfg.Pipeline.MinRoomAreaM2)
	result, err := pipe.Run(ctx, path, opts)
	if err != nil {
		return fmt.Errorf("processing failed: %w", err)
	}

	format := processFormat
	if format == "" {
		format = cfg.Output.DefaultFormat
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}
	if cli, ok := formatter.(*output.CLIFormatter); ok {
		cli.ShowRows = showRows || cfg.Output.ShowRows
	}
	return formatter.Render(os.Stdout, result)
}

// openStore builds the configured store backend
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "postgres":
		return storage.NewPostgresStore(cfg.Storage.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// buildEngine assembles the estimation engine from the configured
// rate card and material rules
func buildEngine(cfg *config.Config) (*estimate.Engine, error) {
	var card *rates.Card
	if cfg.Rates.CardPath != "" {
		loaded, err := rates.LoadCard(cfg.Rates.CardPath)
		if err != nil {
			return nil, fmt.Errorf("loading rate card: %w", err)
		}
		card = loaded
	}

	rules := rates.DefaultMaterialRules()
	if cfg.Rates.MaterialsPath != "" {
		loaded, err := rates.LoadMaterialRules(cfg.Rates.MaterialsPath)
		if err != nil {
			return nil, fmt.Errorf("loading material rules: %w", err)
		}
		rules = loaded
	}

	resolver := rates.NewResolver(card, rates.DefaultRateCard(), cfg.Rates.Location)
	return estimate.New(resolver, rules, cfg.Pipeline.TaxRate), nil
}
