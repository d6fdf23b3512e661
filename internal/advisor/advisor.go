package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/blackwell-systems/aiready/internal/metrics"
	"github.com/sirupsen/logrus"
)

// Operation names used in logs and metrics.
const (
	OpExecutiveSummary  = "executive_summary"
	OpCapabilities      = "capabilities"
	OpPerformanceImpact = "performance_impact"
	OpGrouping          = "grouping"
)

// SummaryItem is a ranked role as shown to the summary prompt.
type SummaryItem struct {
	Title       string
	Department  string
	Priority    string
	ValueScore  float64
	EffortScore float64
}

// SummaryRequest carries the inputs of the executive summary.
type SummaryRequest struct {
	AssessmentID int64
	CompanyName  string
	Industry     string
	Goals        string
	TopItems     []SummaryItem
	NoCache      bool
}

// RoleContext identifies the role a recommendation call is about.
type RoleContext struct {
	Role      assessment.Role
	PainPoint assessment.PainPoint
}

// Advisor implements the recommendation operations on top of a Completer.
// Every method returns an error on transport or decoding failure; callers
// substitute the matching Fallback function.
type Advisor struct {
	completer Completer
	log       logrus.FieldLogger
	metrics   *metrics.Metrics
}

// Option configures an Advisor.
type Option func(*Advisor)

// WithLogger sets the logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(a *Advisor) { a.log = log }
}

// WithMetrics records call outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Advisor) { a.metrics = m }
}

// New returns an Advisor backed by completer.
func New(completer Completer, opts ...Option) *Advisor {
	if completer == nil {
		completer = Unavailable()
	}
	a := &Advisor{completer: completer}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		a.log = l
	}
	return a
}

func (a *Advisor) complete(ctx context.Context, op string, req Request) (string, error) {
	text, err := a.completer.Complete(ctx, req)
	if err != nil {
		a.metrics.ProviderCall(op, metrics.OutcomeError)
		a.log.WithFields(logrus.Fields{"op": op, "provider": a.completer.Name()}).WithError(err).Debug("provider call failed")
		return "", fmt.Errorf("%s: %w", op, err)
	}
	a.metrics.ProviderCall(op, metrics.OutcomeOK)
	return text, nil
}

// ExecutiveSummary asks for a 300-400 word summary of the top items.
func (a *Advisor) ExecutiveSummary(ctx context.Context, req SummaryRequest) (string, error) {
	text, err := a.complete(ctx, OpExecutiveSummary, Request{
		System:  summarySystemPrompt,
		User:    summaryPrompt(req),
		Seed:     req.AssessmentID,
		NoCache:  req.NoCache,
		Validate: validSummary,
	})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if err := validSummary(text); err != nil {
		return "", fmt.Errorf("%s: %w", OpExecutiveSummary, err)
	}
	return text, nil
}

func validSummary(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("%w: empty summary", ErrMalformedResponse)
	}
	return nil
}

// decodes adapts a decoder into a Request.Validate check.
func decodes[T any](decode func(string) (T, error)) func(string) error {
	return func(text string) error {
		_, err := decode(text)
		return err
	}
}

// CapabilityRecommendations asks for the capabilities that best address
// the role's pain point.
func (a *Advisor) CapabilityRecommendations(ctx context.Context, rc RoleContext) ([]assessment.Recommendation, error) {
	text, err := a.complete(ctx, OpCapabilities, Request{
		System:      capabilitiesSystemPrompt,
		User:        capabilitiesPrompt(rc),
		JSON:        true,
		Temperature: 0.3,
		Validate:    decodes(decodeRecommendations),
	})
	if err != nil {
		return nil, err
	}
	recs, err := decodeRecommendations(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpCapabilities, err)
	}
	return recs, nil
}

// PerformanceImpact asks for predicted metric improvements and annual ROI.
func (a *Advisor) PerformanceImpact(ctx context.Context, rc RoleContext) (PerformanceEstimate, error) {
	text, err := a.complete(ctx, OpPerformanceImpact, Request{
		System:      performanceSystemPrompt,
		User:        performancePrompt(rc),
		JSON:        true,
		Temperature: 0.2,
		Validate:    decodes(decodePerformance),
	})
	if err != nil {
		return PerformanceEstimate{}, err
	}
	est, err := decodePerformance(text)
	if err != nil {
		return PerformanceEstimate{}, fmt.Errorf("%s: %w", OpPerformanceImpact, err)
	}
	return est, nil
}

// GroupDuplicates asks the provider to group duplicate capabilities in
// batch. There is no fallback: a failed batch is skipped by the caller.
func (a *Advisor) GroupDuplicates(ctx context.Context, batch []assessment.Capability) (*GroupingResult, error) {
	text, err := a.complete(ctx, OpGrouping, Request{
		System:      GroupingSystemPrompt,
		User:        GroupingPrompt(batch),
		JSON:        true,
		Temperature: 0.2,
		NoCache:     true,
		Validate:    decodes(DecodeGrouping),
	})
	if err != nil {
		return nil, err
	}
	res, err := DecodeGrouping(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpGrouping, err)
	}
	return res, nil
}
