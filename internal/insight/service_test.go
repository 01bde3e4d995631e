package insight

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-feasibility-backend/config"
	"equipment-feasibility-backend/internal/feasibility"
)

type fakeSource struct {
	mu     sync.Mutex
	tables feasibility.Tables
	err    error
	loads  int
}

func (f *fakeSource) Load(ctx context.Context) (feasibility.Tables, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	return f.tables, f.err
}

func (f *fakeSource) set(t feasibility.Tables) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tables = t
}

func catalog(codes ...string) feasibility.Tables {
	var t feasibility.Tables
	for _, c := range codes {
		t.Catalog = append(t.Catalog, feasibility.Equipment{Code: c, Name: c, Category: "Tenda"})
	}
	return t
}

func testConfig(refresh bool) *config.Config {
	cfg := config.Default()
	cfg.Analysis.Location = time.UTC
	cfg.Refresh.Enabled = refresh
	cfg.Refresh.Interval = 10 * time.Millisecond
	return cfg
}

func TestService_SnapshotIsCachedPerDay(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(false))
	ctx := context.Background()

	morning := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC)
	nextDay := time.Date(2024, 7, 2, 8, 0, 0, 0, time.UTC)

	s1, err := svc.Snapshot(ctx, morning)
	require.NoError(t, err)
	s2, err := svc.Snapshot(ctx, evening)
	require.NoError(t, err)
	s3, err := svc.Snapshot(ctx, nextDay)
	require.NoError(t, err)

	assert.Same(t, s1, s2)
	assert.NotSame(t, s1, s3)
	assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), s1.Reference)
	assert.Len(t, s1.Insights, 1)
	assert.Equal(t, 3, src.loads, "source is read on every call without a refresher")
	assert.Equal(t, 2, svc.cache.Len())
}

func TestService_SnapshotRecomputesWhenSourceChanges(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(false))
	ctx := context.Background()
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	invalidated := 0
	svc.OnInvalidate(func() { invalidated++ })

	s1, err := svc.Snapshot(ctx, ref)
	require.NoError(t, err)

	src.set(catalog("A001", "A002"))
	s2, err := svc.Snapshot(ctx, ref)
	require.NoError(t, err)

	assert.NotEqual(t, s1.Fingerprint, s2.Fingerprint)
	fp, err := TablesFingerprint(catalog("A001", "A002"))
	require.NoError(t, err)
	assert.Equal(t, fp, s2.Fingerprint)
	assert.Equal(t, Key(fp, ref), s2.Key)
	assert.Len(t, s2.Insights, 2)
	assert.Equal(t, 1, invalidated)
}

func TestService_SnapshotUsesRefreshedTables(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(true))
	ctx := context.Background()
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, svc.CacheKey(ref), "unknown before the first load")

	_, err := svc.Snapshot(ctx, ref)
	require.NoError(t, err)
	_, err = svc.Snapshot(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, 1, src.loads, "refresher owns reloading")
	assert.NotEmpty(t, svc.CacheKey(ref))

	key := svc.CacheKey(ref)
	src.set(catalog("B001"))
	changed, err := svc.Refresh(ctx)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.NotEqual(t, key, svc.CacheKey(ref))
	assert.Equal(t, 0, svc.cache.Len())

	changed, err = svc.Refresh(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestService_SnapshotSourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("disk gone")}
	svc := NewService(src, testConfig(false))

	_, err := svc.Snapshot(context.Background(), time.Time{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestService_SnapshotDefaultsToNow(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(false))
	svc.now = func() time.Time { return time.Date(2024, 3, 5, 17, 30, 0, 0, time.UTC) }

	snap, err := svc.Snapshot(context.Background(), time.Time{})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), snap.Reference)
}

func TestService_InvalidateFlushes(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(false))
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	s1, err := svc.Snapshot(context.Background(), ref)
	require.NoError(t, err)
	svc.Invalidate()
	s2, err := svc.Snapshot(context.Background(), ref)
	require.NoError(t, err)

	assert.NotSame(t, s1, s2)
	assert.Equal(t, s1.Insights, s2.Insights)
}

func TestService_InvalidateReloadsSourceWithRefresher(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(true))
	ctx := context.Background()
	ref := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	s1, err := svc.Snapshot(ctx, ref)
	require.NoError(t, err)
	require.Len(t, s1.Insights, 1)

	src.set(catalog("A001", "A002"))
	svc.Invalidate()
	assert.Empty(t, svc.CacheKey(ref), "unknown until the source is read again")

	s2, err := svc.Snapshot(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, s2.Insights, 2)
	assert.Equal(t, 2, src.loads)
	assert.NotEmpty(t, svc.CacheKey(ref))
}

func TestService_RunRefreshesUntilCancelled(t *testing.T) {
	src := &fakeSource{tables: catalog("A001")}
	svc := NewService(src, testConfig(true))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		src.mu.Lock()
		defer src.mu.Unlock()
		return src.loads >= 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestStartOfDay(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	// 20:00 UTC is already the next day in Jakarta (UTC+7).
	got := StartOfDay(time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC), jakarta)
	assert.Equal(t, time.Date(2024, 7, 2, 0, 0, 0, 0, jakarta), got)
}

func TestTablesFingerprint(t *testing.T) {
	a, err := TablesFingerprint(catalog("A001"))
	require.NoError(t, err)
	b, err := TablesFingerprint(catalog("A001"))
	require.NoError(t, err)
	c, err := TablesFingerprint(catalog("A002"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
