// Package pipeline orchestrates the full drawing-to-estimate run.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plancost/adapters/dxf"
	"plancost/adapters/storage"
	"plancost/core/classify"
	"plancost/core/estimate"
	"plancost/core/extract"
	"plancost/core/match"
	"plancost/core/types"
	"plancost/core/units"
	"plancost/internal/logging"
)

// relaxFactors is the retry ladder applied to the noise floor when a
// pass yields no rooms. Dense small-room plans sit below the default
// floor for their unit.
var relaxFactors = []float64{1, 10, 100}

// Options control a single pipeline run
type Options struct {
	// UnitHint forces a drawing unit; UnitAuto detects from geometry
	UnitHint types.Unit

	// Mode selects summary or detailed estimation
	Mode types.EstimateMode

	// KeepSmall retains classified rooms below the persistence floor
	KeepSmall bool

	// AsOf is the effective date for rate resolution; zero means now
	AsOf time.Time
}

// Result is the outcome of a run. An empty Rooms slice is a valid
// outcome, not an error.
type Result struct {
	DrawingID    string                  `json:"drawing_id"`
	Path         string                  `json:"path"`
	Scale        types.UnitScale         `json:"scale"`
	Info         types.DrawingInfo       `json:"info"`
	Rooms        []types.ClassifiedRoom  `json:"rooms"`
	DroppedSmall int                     `json:"dropped_small"`
	Takeoff      types.MaterialTakeoff   `json:"takeoff"`
	Estimate     *storage.StoredEstimate `json:"estimate"`
	Duration     time.Duration           `json:"duration"`
}

// Pipeline wires the extraction, matching, classification and
// estimation stages over a store.
type Pipeline struct {
	reader        *dxf.Reader
	extractor     *extract.Extractor
	units         *units.Resolver
	matcher       *match.Matcher
	engine        *estimate.Engine
	store         storage.Store
	minRoomAreaM2 float64
	log           *zap.Logger
}

// New creates a pipeline over the given engine and store
func New(engine *estimate.Engine, store storage.Store, minRoomAreaM2 float64) *Pipeline {
	return &Pipeline{
		reader:        dxf.NewReader(),
		extractor:     extract.New(),
		units:         units.New(),
		matcher:       match.New(),
		engine:        engine,
		store:         store,
		minRoomAreaM2: minRoomAreaM2,
		log:           logging.Logger,
	}
}

// DrawingID derives a stable identifier from the drawing path, so
// re-running the same drawing replaces its previous records.
func DrawingID(path string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("plancost:"+path)).String()
}

// Run processes one drawing end to end. A parse failure is fatal and
// leaves the store untouched; everything downstream degrades to an
// empty result instead of failing.
func (p *Pipeline) Run(ctx context.Context, path string, opts Options) (*Result, error) {
	start := time.Now()

	drawing, err := p.reader.Read(path)
	if err != nil {
		return nil, err
	}

	info := extract.Inspect(drawing)
	labels := p.extractor.Labels(drawing)

	// unit detection looks at all closed boundaries before any noise
	// floor is applied
	probe := p.extractor.Boundaries(drawing, 0)
	scale := p.units.Resolve(opts.UnitHint, probe)

	p.log.Info("drawing parsed",
		zap.String("path", path),
		zap.String("version", drawing.Version),
		zap.Int("entities", info.TotalEntities),
		zap.Int("labels", len(labels)),
		zap.String("unit", string(scale.Unit)),
		zap.Bool("inferred", scale.Inferred))

	var candidates []types.RoomCandidate
	effective := scale
	for _, factor := range relaxFactors {
		effective = units.Relax(scale, factor)
		boundaries := p.extractor.Boundaries(drawing, effective.MinRawArea)
		candidates = p.matcher.Match(labels, boundaries, effective)
		if len(candidates) > 0 {
			break
		}
		p.log.Warn("no rooms at noise floor, relaxing",
			zap.Float64("min_raw_area", effective.MinRawArea),
			zap.Float64("factor", factor))
	}

	rooms := classify.ClassifyAll(candidates)

	dropped := 0
	if !opts.KeepSmall {
		kept := rooms[:0]
		for _, room := range rooms {
			if room.AreaM2 < p.minRoomAreaM2 {
				dropped++
				p.log.Debug("dropping small room",
					zap.String("name", room.Name),
					zap.Float64("area_m2", room.AreaM2))
				continue
			}
			kept = append(kept, room)
		}
		rooms = kept
	}

	drawingID := DrawingID(path)
	if err := p.store.ReplaceRooms(ctx, drawingID, rooms); err != nil {
		return nil, err
	}

	asOf := opts.AsOf
	if asOf.IsZero() {
		asOf = time.Now()
	}
	mode := opts.Mode
	if mode == "" {
		mode = types.ModeSummary
	}

	stored := &storage.StoredEstimate{
		ID:        uuid.NewString(),
		DrawingID: drawingID,
		Mode:      mode,
	}
	switch mode {
	case types.ModeDetailed:
		detailed := p.engine.Detailed(rooms, asOf)
		stored.Detailed = &detailed
	default:
		summary := p.engine.Summary(rooms)
		stored.Summary = &summary
	}
	if err := p.store.ReplaceEstimate(ctx, drawingID, stored); err != nil {
		return nil, err
	}

	result := &Result{
		DrawingID:    drawingID,
		Path:         path,
		Scale:        effective,
		Info:         info,
		Rooms:        rooms,
		DroppedSmall: dropped,
		Takeoff:      p.engine.Takeoff(rooms),
		Estimate:     stored,
		Duration:     time.Since(start),
	}
	p.log.Info("run complete",
		zap.String("drawing_id", drawingID),
		zap.Int("rooms", len(rooms)),
		zap.Int("dropped_small", dropped),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// Inspect parses a drawing and reports its structure without touching
// the store.
func (p *Pipeline) Inspect(path string) (*types.Drawing, types.DrawingInfo, error) {
	drawing, err := p.reader.Read(path)
	if err != nil {
		return nil, types.DrawingInfo{}, err
	}
	return drawing, extract.Inspect(drawing), nil
}
