package advisor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/blackwell-systems/aiready/internal/assessment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCompleter returns a numbered reply per call.
type countingCompleter struct {
	calls int
	err   error
}

func (c *countingCompleter) Name() string { return "counting" }

func (c *countingCompleter) Complete(_ context.Context, req Request) (string, error) {
	c.calls++
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("reply %d to %s", c.calls, req.User), nil
}

func TestCachedCompleter_ServesRepeats(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &countingCompleter{}
	c := NewCachedCompleter(inner, cache)
	ctx := context.Background()

	first, err := c.Complete(ctx, Request{System: "s", User: "u"})
	require.NoError(t, err)
	second, err := c.Complete(ctx, Request{System: "s", User: "u"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.True(t, c.Cached(Request{System: "s", User: "u"}))
	assert.False(t, c.Cached(Request{System: "other", User: "u"}))
}

func TestCachedCompleter_NoCacheBypassesRead(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &countingCompleter{}
	c := NewCachedCompleter(inner, cache)
	ctx := context.Background()

	_, err = c.Complete(ctx, Request{User: "u"})
	require.NoError(t, err)
	fresh, err := c.Complete(ctx, Request{User: "u", NoCache: true})
	require.NoError(t, err)
	assert.Equal(t, "reply 2 to u", fresh)

	cached, err := c.Complete(ctx, Request{User: "u"})
	require.NoError(t, err)
	assert.Equal(t, "reply 2 to u", cached)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedCompleter_ErrorsAreNotCached(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &countingCompleter{err: errors.New("boom")}
	c := NewCachedCompleter(inner, cache)

	_, err = c.Complete(context.Background(), Request{User: "u"})
	assert.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

// sequenceCompleter returns its replies in order, repeating the last one.
type sequenceCompleter struct {
	replies []string
	calls   int
}

func (s *sequenceCompleter) Name() string { return "sequence" }

func (s *sequenceCompleter) Complete(context.Context, Request) (string, error) {
	reply := s.replies[min(s.calls, len(s.replies)-1)]
	s.calls++
	return reply, nil
}

func TestCachedCompleter_RejectedRepliesAreNotCached(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &sequenceCompleter{replies: []string{"bad", "good"}}
	c := NewCachedCompleter(inner, cache)
	req := Request{User: "u", Validate: func(text string) error {
		if text != "good" {
			return ErrMalformedResponse
		}
		return nil
	}}

	first, err := c.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "bad", first)
	assert.Equal(t, 0, cache.Len())

	second, err := c.Complete(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "good", second)
	assert.Equal(t, 1, cache.Len())
}

func TestAdvisor_MalformedReplyIsRetriedNotCached(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &sequenceCompleter{replies: []string{
		"not json at all",
		`{"metrics":[{"name":"Cycle time","improvement":22}],"estimatedAnnualRoi":99000}`,
	}}
	a := New(NewCachedCompleter(inner, cache))
	rc := RoleContext{Role: assessment.Role{Title: "Support Agent"}}
	ctx := context.Background()

	_, err = a.PerformanceImpact(ctx, rc)
	assert.ErrorIs(t, err, ErrMalformedResponse)

	est, err := a.PerformanceImpact(ctx, rc)
	require.NoError(t, err)
	assert.Equal(t, 99000.0, est.EstimatedAnnualROI)
	assert.Equal(t, 2, inner.calls)

	again, err := a.PerformanceImpact(ctx, rc)
	require.NoError(t, err)
	assert.Equal(t, est, again)
	assert.Equal(t, 2, inner.calls, "valid reply served from cache")
}

func TestAdvisor_EmptySummaryIsNotCached(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 10)
	require.NoError(t, err)
	inner := &sequenceCompleter{replies: []string{"  ", "Start with support."}}
	a := New(NewCachedCompleter(inner, cache))

	_, err = a.ExecutiveSummary(context.Background(), SummaryRequest{CompanyName: "Acme"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
	got, err := a.ExecutiveSummary(context.Background(), SummaryRequest{CompanyName: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Start with support.", got)
}

func TestResponseCache_Bounded(t *testing.T) {
	for _, policy := range []string{PolicyLRU, Policy2Q} {
		t.Run(policy, func(t *testing.T) {
			cache, err := NewResponseCache(policy, 3)
			require.NoError(t, err)
			for i := 0; i < 10; i++ {
				cache.Add(fmt.Sprintf("k%d", i), "v")
			}
			assert.LessOrEqual(t, cache.Len(), 3)
			_, ok := cache.Get("k9")
			assert.True(t, ok)
			_, ok = cache.Get("k0")
			assert.False(t, ok)
		})
	}
}

func TestResponseCache_LRUEvictsLeastRecentlyUsed(t *testing.T) {
	cache, err := NewResponseCache(PolicyLRU, 2)
	require.NoError(t, err)
	cache.Add("a", "1")
	cache.Add("b", "2")
	_, _ = cache.Get("a")
	cache.Add("c", "3")

	_, ok := cache.Get("b")
	assert.False(t, ok)
	_, ok = cache.Get("a")
	assert.True(t, ok)
}

func TestNewResponseCache_Rejects(t *testing.T) {
	_, err := NewResponseCache("random", 10)
	assert.Error(t, err)
	_, err = NewResponseCache(PolicyLRU, 0)
	assert.Error(t, err)
}
