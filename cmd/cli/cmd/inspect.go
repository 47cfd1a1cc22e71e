// Package cmd - inspect command
package cmd

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"plancost/adapters/dxf"
	"plancost/core/extract"
	"plancost/core/types"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the structure of a DXF drawing",
	Long: `Parse a DXF drawing and report its entity counts, text labels and
possible room boundaries without storing anything.

Examples:
  plancost inspect floorplan.dxf`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}

	drawing, err := dxf.NewReader().Read(path)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	info := extract.Inspect(drawing)

	fmt.Printf("Drawing:             %s\n", path)
	fmt.Printf("Version:             %s\n", info.Version)
	fmt.Printf("Total entities:      %d\n", info.TotalEntities)
	fmt.Printf("Text labels:         %d\n", info.TextLabels)
	fmt.Printf("Possible boundaries: %d\n", info.PossibleBoundaries)
	fmt.Println()

	kinds := make([]string, 0, len(info.EntityCounts))
	for kind := range info.EntityCounts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)

	fmt.Println("ENTITY COUNTS")
	for _, kind := range kinds {
		fmt.Printf("  %-16s %d\n", kind, info.EntityCounts[types.EntityKind(kind)])
	}
	return nil
}
