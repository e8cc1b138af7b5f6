package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "product-catalog-service"

var (
	metricsOnce sync.Once
	repoOps     metric.Int64Counter
	cacheOps    metric.Int64Counter
)

func initMetrics() {
	meter := otel.Meter(meterName)
	repoOps, _ = meter.Int64Counter("repository.operations",
		metric.WithDescription("Repository operations by entity, operation and outcome"))
	cacheOps, _ = meter.Int64Counter("cache.operations",
		metric.WithDescription("Product cache operations by operation and outcome"))
}

// RecordRepositoryOperation counts one repository call. Outcome is one of
// success, not_found, conflict or error.
func RecordRepositoryOperation(ctx context.Context, entity, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if repoOps == nil {
		return
	}
	repoOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}

// RecordCacheOperation counts one product cache call. Outcome is one of hit,
// miss, success or error.
func RecordCacheOperation(ctx context.Context, operation, outcome string) {
	metricsOnce.Do(initMetrics)
	if cacheOps == nil {
		return
	}
	cacheOps.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	))
}
