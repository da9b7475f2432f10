package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/jsamuelsen/portfolio/internal/platform/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestNew_Disabled(t *testing.T) {
	provider, err := New(context.Background(), &Config{Enabled: false})
	require.NoError(t, err)

	assert.NoError(t, provider.Shutdown(context.Background()))
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Version: "1.2.3", Environment: "qa"},
		Telemetry: config.TelemetryConfig{
			Enabled:      true,
			Endpoint:     "collector:4317",
			ServiceName:  "portfolio",
			SamplingRate: 0.25,
		},
	}

	got := FromConfig(cfg)

	assert.Equal(t, &Config{
		Enabled:      true,
		Endpoint:     "collector:4317",
		ServiceName:  "portfolio",
		Version:      "1.2.3",
		Environment:  "qa",
		SamplingRate: 0.25,
	}, got)
}

func TestMiddleware_SetsTraceHeader(t *testing.T) {
	previous := otel.GetTracerProvider()
	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(previous)
	})

	engine := gin.New()
	engine.Use(TracingMiddleware("portfolio"), Middleware())
	engine.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, w.Header().Get("X-Trace-ID"), 32)
}

func TestMiddleware_NoopTracer(t *testing.T) {
	engine := gin.New()
	engine.Use(Middleware())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Header().Get("X-Trace-ID"))
}
