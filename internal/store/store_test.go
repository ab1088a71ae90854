package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/prospect-engine/pkg/types"
)

func testStore(t *testing.T, freshness time.Duration) *Store {
	t.Helper()
	s, err := New(types.ReportConfig{DataDir: t.TempDir(), Freshness: freshness})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(company, industry string) types.Record {
	return types.Record{
		Company:   company,
		Industry:  industry,
		Offerings: []string{"Industrial pumps", "Flow sensors"},
		Trends:    []string{"Predictive maintenance adoption"},
		Insights:  "The sector is consolidating around smart equipment.",
		UseCases: []types.UseCase{{
			Case:          "Pump failure prediction",
			Objective:     "Cut unplanned downtime",
			AIApplication: "Gradient-boosted models over vibration telemetry",
			Benefits:      []string{"Operations", "Finance"},
		}},
		Recommendation: "Start with predictive maintenance on the pump line.",
		ResourceLinks:  []string{"https://example.com/dataset"},
		GeneratedAt:    time.Now().UTC(),
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	s := testStore(t, time.Hour)
	rec := sampleRecord("Acme", "Manufacturing")

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, rec))

	got, ok, err := s.Get(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestGetMissesUnknownPair(t *testing.T) {
	s := testStore(t, time.Hour)

	_, ok, err := s.Get(context.Background(), "Nobody", "Nothing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetMissesStaleReport(t *testing.T) {
	s := testStore(t, time.Hour)
	rec := sampleRecord("Acme", "Manufacturing")
	rec.GeneratedAt = time.Now().UTC().Add(-2 * time.Hour)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, rec))

	_, ok, err := s.Get(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	assert.False(t, ok, "stale report should not short-circuit a research run")

	// The row is retained; GetAny still serves it.
	got, ok, err := s.GetAny(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}

func TestFreshnessDefault(t *testing.T) {
	s := testStore(t, 0)
	assert.Equal(t, DefaultFreshness, s.freshness)

	rec := sampleRecord("Acme", "Manufacturing")
	rec.GeneratedAt = time.Now().UTC().Add(-6 * time.Hour)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, rec))

	_, ok, err := s.Get(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	assert.True(t, ok, "6h-old report should be fresh under the 24h default")
}

func TestPutReplacesExistingPair(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	first := sampleRecord("Acme", "Manufacturing")
	require.NoError(t, s.Put(ctx, first))

	second := sampleRecord("Acme", "Manufacturing")
	second.Recommendation = "Revised: begin with quality inspection."
	second.Errors = []string{"researching competitors: provider timeout"}
	require.NoError(t, s.Put(ctx, second))

	got, ok, err := s.Get(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second, got)

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Errors)
}

func TestListNewestFirst(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	now := time.Now().UTC()
	oldest := sampleRecord("Initech", "Software")
	oldest.GeneratedAt = now.Add(-3 * time.Hour)
	middle := sampleRecord("Globex", "Energy")
	middle.GeneratedAt = now.Add(-2 * time.Hour)
	middle.Errors = []string{"a", "b"}
	newest := sampleRecord("Acme", "Manufacturing")
	newest.GeneratedAt = now.Add(-1 * time.Hour)

	for _, rec := range []types.Record{oldest, middle, newest} {
		require.NoError(t, s.Put(ctx, rec))
	}

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	want := []Summary{
		{Company: "Acme", Industry: "Manufacturing", GeneratedAt: newest.GeneratedAt},
		{Company: "Globex", Industry: "Energy", GeneratedAt: middle.GeneratedAt, Errors: 2},
		{Company: "Initech", Industry: "Software", GeneratedAt: oldest.GeneratedAt},
	}
	assert.Equal(t, want, summaries)
}

func TestDelete(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleRecord("Acme", "Manufacturing")))

	ok, err := s.Delete(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	assert.False(t, ok, "second delete should report no matching row")

	_, found, err := s.GetAny(ctx, "Acme", "Manufacturing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestClear(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleRecord("Acme", "Manufacturing")))
	require.NoError(t, s.Put(ctx, sampleRecord("Globex", "Energy")))

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestNewCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	s, err := New(types.ReportConfig{DataDir: dir, Freshness: time.Hour})
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
}

func TestPairsAreCaseSensitive(t *testing.T) {
	s := testStore(t, time.Hour)
	ctx := context.Background()

	upper := sampleRecord("Acme", "Manufacturing")
	upper.Recommendation = "Upper."
	lower := sampleRecord("acme", "Manufacturing")
	lower.Recommendation = "Lower."
	require.NoError(t, s.Put(ctx, upper))
	require.NoError(t, s.Put(ctx, lower))

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, summaries, 2)

	got, ok, err := s.Get(ctx, "acme", "Manufacturing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Lower.", got.Recommendation)
}

func TestReopenServesStoredReports(t *testing.T) {
	dir := t.TempDir()
	cfg := types.ReportConfig{DataDir: dir, Freshness: time.Hour}

	s, err := New(cfg)
	require.NoError(t, err)
	rec := sampleRecord("Acme", "Manufacturing")
	require.NoError(t, s.Put(context.Background(), rec))
	require.NoError(t, s.Close())

	reopened, err := New(cfg)
	require.NoError(t, err)
	defer reopened.Close()

	got, ok, err := reopened.GetAny(context.Background(), "Acme", "Manufacturing")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, rec, got)
}
