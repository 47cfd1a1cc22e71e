package rates

import (
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"plancost/core/types"
	"plancost/internal/errors"
)

// rateCardFile is the HCL schema for an operator-maintained rate card:
//
//	rate "Civil" "Brickwork" {
//	  unit           = "sqm"
//	  rate           = 575
//	  effective_from = "2024-01-01"
//	  location       = "Pune"   # optional
//	  active         = true     # optional, default true
//	}
type rateCardFile struct {
	Rates []rateBlock `hcl:"rate,block"`
}

type rateBlock struct {
	Category      string  `hcl:"category,label"`
	Item          string  `hcl:"item,label"`
	Unit          string  `hcl:"unit"`
	Rate          float64 `hcl:"rate"`
	EffectiveFrom string  `hcl:"effective_from"`
	Location      *string `hcl:"location,optional"`
	Active        *bool   `hcl:"active,optional"`
}

// materialsFile is the HCL schema for material coefficient overrides:
//
//	material "Bedroom" {
//	  cement_bags_per_sqm = 0.4
//	  sand_tons_per_sqm   = 0.05
//	  paint_sqm_ratio     = 3.5
//	  tiles_ratio         = 1.0
//	}
type materialsFile struct {
	Materials []materialBlock `hcl:"material,block"`
}

type materialBlock struct {
	RoomType        string  `hcl:"room_type,label"`
	CementBagsPerM2 float64 `hcl:"cement_bags_per_sqm"`
	SandTonsPerM2   float64 `hcl:"sand_tons_per_sqm"`
	PaintRatio      float64 `hcl:"paint_sqm_ratio"`
	TileRatio       float64 `hcl:"tiles_ratio"`
}

// LoadCard parses an HCL rate-card file into a Card
func LoadCard(path string) (*Card, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Config("cannot parse rate card", diags).WithContext("path", path)
	}

	var parsed rateCardFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, errors.Config("invalid rate card schema", diags).WithContext("path", path)
	}

	entries := make([]types.RateEntry, 0, len(parsed.Rates))
	for _, block := range parsed.Rates {
		effective, err := time.Parse("2006-01-02", block.EffectiveFrom)
		if err != nil {
			return nil, errors.Wrapf(errors.TypeConfig, err,
				"invalid effective_from date for %q", block.Item)
		}
		if block.Rate < 0 {
			return nil, errors.Newf(errors.TypeRate, "negative rate for %s/%s",
				block.Category, block.Item)
		}
		entry := types.RateEntry{
			Category:      types.Category(block.Category),
			ItemName:      block.Item,
			Unit:          block.Unit,
			Rate:          decimal.NewFromFloat(block.Rate),
			EffectiveFrom: effective,
			Active:        true,
		}
		if block.Location != nil {
			entry.Location = *block.Location
		}
		if block.Active != nil {
			entry.Active = *block.Active
		}
		entries = append(entries, entry)
	}
	return NewCard(entries), nil
}

// LoadMaterialRules parses an HCL material-rules file. Room types not
// present in the file keep their built-in defaults.
func LoadMaterialRules(path string) (map[types.RoomType]types.MaterialRule, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Config("cannot parse material rules", diags).WithContext("path", path)
	}

	var parsed materialsFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, errors.Config("invalid material rules schema", diags).WithContext("path", path)
	}

	rules := DefaultMaterialRules()
	for _, block := range parsed.Materials {
		rules[types.RoomType(block.RoomType)] = types.MaterialRule{
			CementBagsPerM2: block.CementBagsPerM2,
			SandTonsPerM2:   block.SandTonsPerM2,
			PaintRatio:      block.PaintRatio,
			TileRatio:       block.TileRatio,
		}
	}
	return rules, nil
}
