package telemetry

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterName is the instrumentation scope every instrument in this program
// is recorded under.
const MeterName = "github.com/vxgraph/louvain"

// Metrics holds the instruments the Louvain driver updates: the epoch
// duration and modularity once per epoch, vertices moved once per pass.
type Metrics struct {
	provider *sdkmetric.MeterProvider

	EpochDuration metric.Float64Histogram
	VerticesMoved metric.Int64Counter
	Modularity    metric.Float64Gauge
}

// NewMetrics builds an OpenTelemetry meter provider bridged to a
// Prometheus collector and registers the three instruments the driver
// reports: an epoch-duration histogram, a vertices-moved counter, and a
// modularity gauge.
func NewMetrics() (*Metrics, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("telemetry: create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter(MeterName)

	epochDuration, err := meter.Float64Histogram("louvain.epoch.duration_seconds",
		metric.WithDescription("wall-clock time of one Louvain epoch"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: register epoch duration histogram: %w", err)
	}

	verticesMoved, err := meter.Int64Counter("louvain.vertices_moved",
		metric.WithDescription("vertices reassigned to a new community"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: register vertices moved counter: %w", err)
	}

	modularity, err := meter.Float64Gauge("louvain.modularity",
		metric.WithDescription("modularity Q at the end of the most recent pass"))
	if err != nil {
		return nil, fmt.Errorf("telemetry: register modularity gauge: %w", err)
	}

	return &Metrics{
		provider:      provider,
		EpochDuration: epochDuration,
		VerticesMoved: verticesMoved,
		Modularity:    modularity,
	}, nil
}

// Shutdown releases the meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	if m == nil || m.provider == nil {
		return nil
	}
	return m.provider.Shutdown(ctx)
}

// Serve starts a minimal HTTP server exposing GET /metrics (Prometheus
// exposition format) and GET /healthz (liveness), the same library the
// rest of the ambient stack uses for its HTTP surface reduced to the two
// routes this tool needs. It blocks until ctx is cancelled or the server
// fails.
func Serve(ctx context.Context, addr string) error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	srv := &http.Server{Addr: addr, Handler: router}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		return srv.Shutdown(context.Background())
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("telemetry: metrics server: %w", err)
		}
		return nil
	}
}
