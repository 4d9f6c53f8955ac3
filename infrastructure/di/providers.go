package di

import (
	"context"

	"fieldstore/application/commands"
	"fieldstore/application/commands/bus"
	commandhandlers "fieldstore/application/commands/handlers"
	"fieldstore/application/ports"
	"fieldstore/application/queries"
	querybus "fieldstore/application/queries/bus"
	queryhandlers "fieldstore/application/queries/handlers"
	"fieldstore/infrastructure/config"
	"fieldstore/infrastructure/messaging/eventbridge"
	ddb "fieldstore/infrastructure/persistence/dynamodb"
	"fieldstore/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	DocRepo    ports.DocumentRepository
	EventBus   ports.EventBus
	Cache      ports.Cache
	Metrics    *observability.Metrics
	Tracer     *observability.Tracer
	CommandBus *bus.CommandBus
	QueryBus   *querybus.QueryBus
}

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("fieldstore")
}

// ProvideMetrics creates the CloudWatch metrics publisher. Metrics are
// disabled unless explicitly enabled in config.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.Metrics {
	if !cfg.EnableMetrics {
		return observability.NewMetrics(nil, cfg.MetricsNamespace, logger)
	}
	return observability.NewMetrics(client, cfg.MetricsNamespace, logger)
}

// ProvideDocumentRepository creates the DynamoDB-backed document repository
func ProvideDocumentRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.DocumentRepository {
	return ddb.NewDocumentRepository(client, cfg.DynamoDBTable, tracer, logger)
}

// ProvideEventBus creates the EventBridge-backed event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewEventBridgePublisher(client, cfg.EventBusName, logger)
}

// ProvideCache creates the in-memory read cache
func ProvideCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCommandBus creates the command bus with all handlers registered
func ProvideCommandBus(
	docRepo ports.DocumentRepository,
	eventBus ports.EventBus,
	cfg *config.Config,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus()

	if err := commandBus.Register(commands.PutDocumentCommand{},
		commandhandlers.NewPutDocumentHandler(docRepo, eventBus, logger)); err != nil {
		return nil, err
	}
	if err := commandBus.Register(commands.PatchDocumentCommand{},
		commandhandlers.NewPatchDocumentHandler(docRepo, eventBus, cfg.FieldMaxDepth, logger)); err != nil {
		return nil, err
	}
	if err := commandBus.Register(commands.DeleteDocumentCommand{},
		commandhandlers.NewDeleteDocumentHandler(docRepo, eventBus, logger)); err != nil {
		return nil, err
	}

	return commandBus, nil
}

// ProvideQueryBus creates the query bus with all handlers registered.
// Single-document reads go through a short-TTL cache.
func ProvideQueryBus(
	docRepo ports.DocumentRepository,
	cache ports.Cache,
	cfg *config.Config,
	logger *zap.Logger,
) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	getHandler := queryhandlers.NewGetDocumentHandler(docRepo, cfg.FieldMaxDepth, logger)
	caching := querybus.NewCachingMiddleware(cache, 15)
	if err := queryBus.Register(queries.GetDocumentQuery{}, caching.Wrap(getHandler)); err != nil {
		return nil, err
	}

	if err := queryBus.Register(queries.ListDocumentsQuery{},
		queryhandlers.NewListDocumentsHandler(docRepo, logger)); err != nil {
		return nil, err
	}

	return queryBus, nil
}
