package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phy132/kirchhoff/internal/store"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	cfg := DefaultConfig()
	cfg.URL = srv.URL
	cfg.Timeout = 2 * time.Second
	c, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		c.Close()
		srv.Close()
	})
	return c
}

func capture(t *testing.T, got *map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func TestClient_EquationPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, capture(t, &got))

	ts := time.Date(2026, 3, 4, 15, 16, 17, 0, time.Local)
	err := c.AppendEquationAttempt(context.Background(), store.EquationAttemptData{
		ID:        "a1",
		Timestamp: ts,
		SetID:     7,
		Name:      "Ada",
		Comment:   "first try",
		Equations: [][4]float64{{1, -1, -1, 0}},
		Result:    "All match",
	})
	require.NoError(t, err)

	assert.Equal(t, SheetEquations, got["sheet"])
	assert.Equal(t, "2026-03-04 15:16:17", got["Time Stamp"])
	assert.Equal(t, "7", got["Set #"])
	assert.Equal(t, "Ada", got["Name"])
	assert.Equal(t, "first try", got["Comment"])
	assert.Equal(t, "[[1,-1,-1,0]]", got["Student Eqs (JSON)"])
	assert.Equal(t, "All match", got["Result (eqs)"])
}

func TestClient_CurrentPayload(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, capture(t, &got))

	err := c.AppendCurrentAttempt(context.Background(), store.CurrentAttemptData{
		SetID:       3,
		Submitted:   [3]float64{83.3, 66.7, 16.7},
		Expected:    [3]float64{83.333, 66.667, 16.667},
		ToleranceMA: 1,
		Result:      "Correct",
	})
	require.NoError(t, err)

	assert.Equal(t, SheetCurrents, got["sheet"])
	assert.Equal(t, "3", got["Set #"])
	assert.InDelta(t, 83.3, got["I1 (mA)"], 1e-9)
	assert.InDelta(t, 16.667, got["I3_exp (mA)"], 1e-9)
	assert.InDelta(t, 1.0, got["Tolerance_mA"], 1e-9)
	assert.Equal(t, "Correct", got["Result"])
}

func TestClient_NonOKIsStatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "2")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	err := c.AppendEquationAttempt(context.Background(), store.EquationAttemptData{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Code)
	assert.Equal(t, "slow down", se.Body)
	assert.Equal(t, 2*time.Second, se.RetryAfter)
	assert.True(t, se.Temporary())
}

func TestClient_UnreachableIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := DefaultConfig()
	cfg.URL = url
	c, err := New(cfg)
	require.NoError(t, err)
	defer c.Close()

	err = c.AppendCurrentAttempt(context.Background(), store.CurrentAttemptData{})
	var unavail *UnavailableError
	assert.ErrorAs(t, err, &unavail)
}

func TestClient_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.AppendEquationAttempt(ctx, store.EquationAttemptData{})
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.False(t, cfg.Enabled())

	cfg.URL = "ftp://example.com/x"
	assert.Error(t, cfg.Validate())

	cfg.URL = "https://script.google.com/macros/s/abc/exec"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.Enabled())

	cfg.Timeout = 0
	assert.Error(t, cfg.Validate())
}

func TestNew_RequiresURL(t *testing.T) {
	_, err := New(DefaultConfig())
	assert.Error(t, err)
}
