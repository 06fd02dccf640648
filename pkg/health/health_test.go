package health

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type body struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func call(t *testing.T, handler http.HandlerFunc) (int, body) {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var b body
	require.NoError(t, json.NewDecoder(w.Body).Decode(&b))
	return w.Code, b
}

func fails(msg string) CheckFunc {
	return func(context.Context) error { return errors.New(msg) }
}

func ok(context.Context) error { return nil }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestLiveEndpoint_Healthy(t *testing.T) {
	h := New()
	h.AddLivenessCheck("goroutines", time.Second, GoroutineCountCheck(1_000_000))

	code, b := call(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", b.Status)
	assert.Equal(t, map[string]string{"goroutines": "ok"}, b.Checks)
}

func TestCheck_Thresholds(t *testing.T) {
	h := New()
	h.AddLivenessCheck("store", time.Second, fails("connection refused"))
	ctx := context.Background()

	h.liveness[0].run(ctx)
	h.liveness[0].run(ctx)
	code, _ := call(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code, "two failures stay below the threshold")

	h.liveness[0].run(ctx)
	code, b := call(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", b.Status)
	assert.Equal(t, "connection refused", b.Checks["store"])

	h.liveness[0].fn = ok
	h.liveness[0].run(ctx)
	code, _ = call(t, h.LiveEndpoint)
	assert.Equal(t, http.StatusOK, code, "one success recovers")
}

func TestReadyEndpoint(t *testing.T) {
	h := New()
	h.AddReadinessCheck("media", time.Second, PingCheck(pinger{}))

	code, b := call(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "service is not ready", b.Checks["_readiness"])
	assert.False(t, h.IsReady())

	h.SetReady(true)
	code, b = call(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]string{"media": "ok"}, b.Checks)
	assert.True(t, h.IsReady())
}

func TestReadyEndpoint_FailingDependency(t *testing.T) {
	h := New()
	h.AddReadinessCheck("records", time.Second, PingCheck(pinger{err: errors.New("dial tcp: refused")}))
	h.SetReady(true)

	for range failureThreshold {
		h.readiness[0].run(context.Background())
	}

	code, b := call(t, h.ReadyEndpoint)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "dial tcp: refused", b.Checks["records"])
	assert.False(t, h.IsReady())
}

func TestStartStop(t *testing.T) {
	h := New()
	h.AddReadinessCheck("flaky", 100*time.Millisecond, fails("down"))
	h.SetReady(true)

	h.Start(context.Background(), 5*time.Millisecond)
	defer h.Stop()

	require.Eventually(t, func() bool { return !h.IsReady() }, time.Second, 5*time.Millisecond)
	h.Stop()
	h.Stop()
}

func TestCheck_Timeout(t *testing.T) {
	h := New()
	h.AddLivenessCheck("slow", 10*time.Millisecond, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	for range failureThreshold {
		h.liveness[0].run(context.Background())
	}

	_, b := call(t, h.LiveEndpoint)
	assert.Equal(t, context.DeadlineExceeded.Error(), b.Checks["slow"])
}
