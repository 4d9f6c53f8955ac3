package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// Metrics publishes operational metrics to CloudWatch. Publishing is
// best-effort: failures are logged and never propagated to the request path.
type Metrics struct {
	client    *cloudwatch.Client
	namespace string
	logger    *zap.Logger
	enabled   bool
}

// NewMetrics creates a new metrics publisher. A nil client disables
// publishing, which keeps local development free of AWS calls.
func NewMetrics(client *cloudwatch.Client, namespace string, logger *zap.Logger) *Metrics {
	return &Metrics{
		client:    client,
		namespace: namespace,
		logger:    logger,
		enabled:   client != nil,
	}
}

// RecordRequest records a request count and latency for an operation
func (m *Metrics) RecordRequest(ctx context.Context, operation string, status int, duration time.Duration) {
	if !m.enabled {
		return
	}

	dimensions := []types.Dimension{
		{Name: aws.String("Operation"), Value: aws.String(operation)},
	}
	now := time.Now()

	data := []types.MetricDatum{
		{
			MetricName: aws.String("RequestCount"),
			Dimensions: dimensions,
			Timestamp:  aws.Time(now),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(1),
		},
		{
			MetricName: aws.String("RequestLatency"),
			Dimensions: dimensions,
			Timestamp:  aws.Time(now),
			Unit:       types.StandardUnitMilliseconds,
			Value:      aws.Float64(float64(duration.Milliseconds())),
		},
	}

	if status >= 500 {
		data = append(data, types.MetricDatum{
			MetricName: aws.String("RequestErrors"),
			Dimensions: dimensions,
			Timestamp:  aws.Time(now),
			Unit:       types.StandardUnitCount,
			Value:      aws.Float64(1),
		})
	}

	if _, err := m.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  aws.String(m.namespace),
		MetricData: data,
	}); err != nil {
		m.logger.Warn("Failed to publish metrics",
			zap.String("operation", operation),
			zap.Error(err),
		)
	}
}
