package assess

import (
	"context"
	"errors"
	"testing"

	"github.com/couchcryptid/event-advisor/internal/domain"
	"github.com/couchcryptid/event-advisor/internal/observability"
	"github.com/couchcryptid/event-advisor/internal/prediction"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingAssessor struct {
	calls int
	err   error
}

func (m *countingAssessor) Assess(_ context.Context, req Request) (domain.Assessment, error) {
	m.calls++
	if m.err != nil {
		return domain.Assessment{}, m.err
	}
	return domain.Assessment{ID: cacheKey(req), Event: req.Event, Model: string(req.Model)}, nil
}

var garden = domain.Event{Name: "Garden party", Outdoors: true, Hour: 15}

// --- CachedAssessor tests ---

func TestCachedAssessor_CacheHit(t *testing.T) {
	inner := &countingAssessor{}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedAssessor(inner, 10, metrics)
	req := Request{Event: garden, Model: prediction.KindSimple, Days: 5}

	a1, err := cached.Assess(context.Background(), req)
	require.NoError(t, err)
	a2, err := cached.Assess(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, a1, a2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.AssessmentCache.WithLabelValues("hit")), 1e-9)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.AssessmentCache.WithLabelValues("miss")), 1e-9)
}

func TestCachedAssessor_KeyIncludesEveryInput(t *testing.T) {
	inner := &countingAssessor{}
	cached := NewCachedAssessor(inner, 10, observability.NewMetricsForTesting())

	indoors := garden
	indoors.Outdoors = false
	covered := garden
	covered.CoverAvailable = true
	later := garden
	later.Hour = 16

	reqs := []Request{
		{Event: garden, Model: prediction.KindSimple, Days: 5},
		{Event: garden, Model: prediction.KindSimple, Days: 6},
		{Event: garden, Model: prediction.KindSophisticated, Days: 5},
		{Event: indoors, Model: prediction.KindSimple, Days: 5},
		{Event: covered, Model: prediction.KindSimple, Days: 5},
		{Event: later, Model: prediction.KindSimple, Days: 5},
	}
	for _, req := range reqs {
		_, err := cached.Assess(context.Background(), req)
		require.NoError(t, err)
	}
	assert.Equal(t, len(reqs), inner.calls)
}

func TestCachedAssessor_YesterdayIgnoresDays(t *testing.T) {
	inner := &countingAssessor{}
	cached := NewCachedAssessor(inner, 10, observability.NewMetricsForTesting())

	for _, days := range []int{0, 1, 7} {
		_, err := cached.Assess(context.Background(), Request{Event: garden, Model: prediction.KindYesterday, Days: days})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.calls)
}

func TestCachedAssessor_ErrorsAreNotCached(t *testing.T) {
	inner := &countingAssessor{err: errors.New("boom")}
	cached := NewCachedAssessor(inner, 10, observability.NewMetricsForTesting())
	req := Request{Event: garden, Model: prediction.KindSimple, Days: 5}

	_, err := cached.Assess(context.Background(), req)
	require.Error(t, err)
	_, err = cached.Assess(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", domain.Assessment{ID: "a"})
	c.put("b", domain.Assessment{ID: "b"})

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", domain.Assessment{ID: "c"})
	assert.Equal(t, 2, c.len())

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExisting(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", domain.Assessment{ID: "a", Advisability: 1})
	c.put("a", domain.Assessment{ID: "a", Advisability: 3})

	got, ok := c.get("a")
	require.True(t, ok)
	assert.InDelta(t, 3.0, got.Advisability, 1e-9)
	assert.Equal(t, 1, c.len())
}
