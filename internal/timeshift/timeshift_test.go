package timeshift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lfpsync/internal/conf"
	"lfpsync/internal/paramstore"
	"lfpsync/internal/signal"
)

type fakeStore struct {
	saved []savedShift
	fail  error
}

type savedShift struct {
	sessionID string
	driftMs   float64
	refDur    float64
}

func (f *fakeStore) Open() error  { return nil }
func (f *fakeStore) Close() error { return nil }
func (f *fakeStore) Get(string) (*paramstore.SessionParameters, error) {
	return nil, nil
}
func (f *fakeStore) Upsert(*paramstore.SessionParameters) error { return nil }
func (f *fakeStore) SaveArtifactTime(string, string, float64, string) error {
	return nil
}
func (f *fakeStore) SaveTimeshift(sessionID string, driftMs, refDurationSeconds float64) error {
	if f.fail != nil {
		return f.fail
	}
	f.saved = append(f.saved, savedShift{sessionID, driftMs, refDurationSeconds})
	return nil
}

func TestEstimate(t *testing.T) {
	cfg := conf.DefaultTimeshift()

	t.Run("drift_within_limit", func(t *testing.T) {
		store := &fakeStore{}
		est := NewEstimator(cfg, store)

		rec, err := est.Estimate("sess-1", 120.0, 120.08)
		require.NoError(t, err)

		assert.InDelta(t, 80.0, rec.DriftMs, 1e-6)
		assert.False(t, rec.Anomaly)
		assert.Equal(t, "sess-1", rec.SessionID)

		require.Len(t, store.saved, 1)
		assert.Equal(t, "sess-1", store.saved[0].sessionID)
		assert.InDelta(t, 80.0, store.saved[0].driftMs, 1e-6)
		assert.InDelta(t, 120.08, store.saved[0].refDur, 1e-9)
	})

	t.Run("excessive_drift_flags_anomaly", func(t *testing.T) {
		store := &fakeStore{}
		est := NewEstimator(cfg, store)

		rec, err := est.Estimate("sess-2", 120.0, 120.15)
		require.NoError(t, err)

		assert.InDelta(t, 150.0, rec.DriftMs, 1e-6)
		assert.True(t, rec.Anomaly)
		// Anomalies are advisory; the record is still persisted.
		require.Len(t, store.saved, 1)
	})

	t.Run("negative_drift", func(t *testing.T) {
		est := NewEstimator(cfg, &fakeStore{})

		rec, err := est.Estimate("sess-3", 120.15, 120.0)
		require.NoError(t, err)
		assert.InDelta(t, -150.0, rec.DriftMs, 1e-6)
		assert.True(t, rec.Anomaly, "limit applies to the drift magnitude")
	})

	t.Run("zero_drift", func(t *testing.T) {
		est := NewEstimator(cfg, &fakeStore{})

		rec, err := est.Estimate("sess-4", 60.0, 60.0)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, rec.DriftMs, 1e-12)
		assert.False(t, rec.Anomaly)
	})

	t.Run("nil_store", func(t *testing.T) {
		est := NewEstimator(cfg, nil)

		rec, err := est.Estimate("sess-5", 1.0, 1.01)
		require.NoError(t, err)
		assert.InDelta(t, 10.0, rec.DriftMs, 1e-6)
	})

	t.Run("store_failure_propagates", func(t *testing.T) {
		store := &fakeStore{fail: assert.AnError}
		est := NewEstimator(cfg, store)

		_, err := est.Estimate("sess-6", 1.0, 2.0)
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestSelectors(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		v, err := StaticSelector(42.5).Select(signal.Signal{}, "ignored")
		require.NoError(t, err)
		assert.InDelta(t, 42.5, v, 1e-12)
	})

	t.Run("func_adapter", func(t *testing.T) {
		sel := SelectorFunc(func(sig signal.Signal, hint string) (float64, error) {
			return sig.Duration() / 2, nil
		})
		sig := signal.New(make([]float64, 1000), 250, signal.RoleLFP)
		v, err := sel.Select(sig, "")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, v, 1e-12)
	})
}
