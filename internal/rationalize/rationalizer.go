// Package rationalize merges duplicate catalog capabilities. Each group
// the provider reports is validated, the duplicates' tool and role links
// move to the primary, and the duplicates are archived as merged.
package rationalize

import (
	"context"
	"fmt"

	"github.com/blackwell-systems/aiready/internal/advisor"
	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Batch size bounds.
const (
	MinBatchSize     = 10
	MaxBatchSize     = 50
	DefaultBatchSize = 25
)

// Store is the catalog persistence the rationalizer mutates.
// GetCapability returns nil, nil for unknown IDs.
type Store interface {
	ListCapabilities(ctx context.Context, includeDuplicates bool) ([]assessment.Capability, error)
	GetCapability(ctx context.Context, id int64) (*assessment.Capability, error)
	ListToolMappings(ctx context.Context, capabilityID int64) ([]assessment.ToolMapping, error)
	MapToolToCapability(ctx context.Context, capabilityID, toolID int64) error
	UnmapToolFromCapability(ctx context.Context, capabilityID, toolID int64) error
	RepointRoleImpacts(ctx context.Context, fromID, toID int64) error
	MarkDuplicate(ctx context.Context, id, canonicalID int64) error
}

// Grouper asks the provider which capabilities in a batch are duplicates.
type Grouper interface {
	GroupDuplicates(ctx context.Context, batch []assessment.Capability) (*advisor.GroupingResult, error)
}

// Result summarizes one rationalization pass.
type Result struct {
	Batches       int `json:"batches"`
	FailedBatches int `json:"failedBatches"`
	GroupsApplied int `json:"groupsApplied"`
	GroupsSkipped int `json:"groupsSkipped"`
	Merged        int `json:"merged"`
}

// Rationalizer finds and merges duplicate capabilities.
type Rationalizer struct {
	store     Store
	grouper   Grouper
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
	batchSize int
	model     string
}

// Option configures a Rationalizer.
type Option func(*Rationalizer)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Rationalizer) { r.log = log }
}

// WithMetrics counts merges on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Rationalizer) { r.metrics = m }
}

// WithBatchSize sets how many capabilities go into one provider request,
// clamped to [MinBatchSize, MaxBatchSize].
func WithBatchSize(n int) Option {
	return func(r *Rationalizer) {
		switch {
		case n < MinBatchSize:
			n = MinBatchSize
		case n > MaxBatchSize:
			n = MaxBatchSize
		}
		r.batchSize = n
	}
}

// WithModel sets the model named in exported batch files.
func WithModel(model string) Option {
	return func(r *Rationalizer) { r.model = model }
}

// New returns a Rationalizer. grouper may be nil when only the batch file
// operations are used.
func New(store Store, grouper Grouper, opts ...Option) *Rationalizer {
	r := &Rationalizer{
		store:     store,
		grouper:   grouper,
		batchSize: DefaultBatchSize,
		model:     "gpt-4-turbo",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		r.log = l
	}
	return r
}

// Run sends the active catalog to the provider in batches and applies the
// groups it returns. A failed batch is counted and skipped.
func (r *Rationalizer) Run(ctx context.Context) (Result, error) {
	var res Result
	if r.grouper == nil {
		return res, fmt.Errorf("rationalize: %w", advisor.ErrUnavailable)
	}
	batches, err := r.batches(ctx)
	if err != nil {
		return res, err
	}

	for i, batch := range batches {
		res.Batches++
		grouping, err := r.grouper.GroupDuplicates(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			res.FailedBatches++
			r.log.WithField("batch", batchID(i)).WithError(err).Warn("grouping batch failed")
			continue
		}
		if err := r.Apply(ctx, grouping.CapabilityGroups, &res); err != nil {
			return res, err
		}
	}
	r.log.WithFields(logrus.Fields{
		"batches": res.Batches,
		"failed":  res.FailedBatches,
		"applied": res.GroupsApplied,
		"skipped": res.GroupsSkipped,
		"merged":  res.Merged,
	}).Info("rationalization complete")
	return res, nil
}

func (r *Rationalizer) batches(ctx context.Context) ([][]assessment.Capability, error) {
	caps, err := r.store.ListCapabilities(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("listing capabilities: %w", err)
	}
	var out [][]assessment.Capability
	for start := 0; start < len(caps); start += r.batchSize {
		end := min(start+r.batchSize, len(caps))
		out = append(out, caps[start:end])
	}
	return out, nil
}

func batchID(i int) string {
	return fmt.Sprintf("batch_%03d", i)
}

// Apply validates and applies groups in order, accumulating into res.
// Invalid groups are skipped; groups already applied stay applied when a
// later group fails. Only context cancellation is returned as an error.
func (r *Rationalizer) Apply(ctx context.Context, groups []advisor.CapabilityGroup, res *Result) error {
	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		log := r.log.WithField("primary_id", g.PrimaryCapabilityID)

		if err := r.validate(ctx, g); err != nil {
			res.GroupsSkipped++
			log.WithError(err).Warn("skipping capability group")
			continue
		}

		merged, err := r.mergeGroup(ctx, log, g)
		res.Merged += merged
		r.metrics.Merged(merged)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			res.GroupsSkipped++
			log.WithError(err).Error("capability group partially applied")
			continue
		}
		res.GroupsApplied++
		log.WithFields(logrus.Fields{"merged": merged, "rationale": g.Rationale}).Debug("capability group applied")
	}
	return nil
}

func (r *Rationalizer) validate(ctx context.Context, g advisor.CapabilityGroup) error {
	if g.PrimaryCapabilityID == 0 || len(g.DuplicateCapabilityIDs) == 0 {
		return fmt.Errorf("group needs a primary and at least one duplicate")
	}
	primary, err := r.store.GetCapability(ctx, g.PrimaryCapabilityID)
	if err != nil {
		return err
	}
	if primary == nil {
		return fmt.Errorf("primary capability %d not found", g.PrimaryCapabilityID)
	}
	if !primary.IsActive() {
		return fmt.Errorf("primary capability %d is itself merged into %d", primary.ID, primary.CanonicalID())
	}
	for _, id := range g.DuplicateCapabilityIDs {
		if id == g.PrimaryCapabilityID {
			return fmt.Errorf("primary capability %d listed as its own duplicate", id)
		}
		dup, err := r.store.GetCapability(ctx, id)
		if err != nil {
			return err
		}
		if dup == nil {
			return fmt.Errorf("duplicate capability %d not found", id)
		}
	}
	return nil
}

// mergeGroup merges every active duplicate into the primary and returns
// how many were merged.
func (r *Rationalizer) mergeGroup(ctx context.Context, log logrus.FieldLogger, g advisor.CapabilityGroup) (int, error) {
	merged := 0
	for _, id := range g.DuplicateCapabilityIDs {
		dup, err := r.store.GetCapability(ctx, id)
		if err != nil {
			return merged, err
		}
		if dup == nil || !dup.IsActive() {
			log.WithField("duplicate_id", id).Debug("capability already merged")
			continue
		}
		if err := r.merge(ctx, id, g.PrimaryCapabilityID); err != nil {
			return merged, fmt.Errorf("merging capability %d: %w", id, err)
		}
		merged++
	}
	return merged, nil
}

func (r *Rationalizer) merge(ctx context.Context, fromID, toID int64) error {
	mappings, err := r.store.ListToolMappings(ctx, fromID)
	if err != nil {
		return err
	}
	for _, m := range mappings {
		if err := r.store.MapToolToCapability(ctx, toID, m.ToolID); err != nil {
			return err
		}
		if err := r.store.UnmapToolFromCapability(ctx, fromID, m.ToolID); err != nil {
			return err
		}
	}
	if err := r.store.RepointRoleImpacts(ctx, fromID, toID); err != nil {
		return err
	}
	return r.store.MarkDuplicate(ctx, fromID, toID)
}
