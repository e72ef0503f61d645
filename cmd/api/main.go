package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mockcommerce/checkout-sandbox/internal/apierror"
	internalaws "github.com/mockcommerce/checkout-sandbox/internal/aws"
	"github.com/mockcommerce/checkout-sandbox/internal/checkout"
	"github.com/mockcommerce/checkout-sandbox/internal/config"
	"github.com/mockcommerce/checkout-sandbox/internal/delegation"
	"github.com/mockcommerce/checkout-sandbox/internal/handlers"
	"github.com/mockcommerce/checkout-sandbox/internal/logging"
	"github.com/mockcommerce/checkout-sandbox/internal/orders"
	"github.com/mockcommerce/checkout-sandbox/internal/storage"
)

func setupRouter(deps handlers.Deps, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		ae := apierror.Internal(fmt.Errorf("panic: %v", recovered))
		c.AbortWithStatusJSON(ae.HTTPStatus(), ae)
	}))
	r.Use(logging.RequestLogger(logger))
	handlers.RegisterRoutes(r, deps)
	return r
}

// buildStores returns the three record stores for the configured backend.
func buildStores(ctx context.Context, cfg config.Config, clients *internalaws.Clients) (sessions, orderRecs, tokens storage.RecordStore, err error) {
	switch cfg.StorageBackend {
	case config.BackendDynamo:
		sessions = storage.NewDynamoStore(clients.DynamoDB, cfg.SessionsTable)
		orderRecs = storage.NewDynamoStore(clients.DynamoDB, cfg.OrdersTable)
		tokens = storage.NewDynamoStore(clients.DynamoDB, cfg.TokensTable)
	case config.BackendRedis:
		client, rerr := storage.NewRedisClient(ctx, cfg.RedisURL)
		if rerr != nil {
			return nil, nil, nil, rerr
		}
		sessions = storage.NewRedisStore(client, "checkout:sessions")
		orderRecs = storage.NewRedisStore(client, "checkout:orders")
		tokens = storage.NewRedisStore(client, "checkout:tokens")
	default:
		sessions = storage.NewMemoryStore()
		orderRecs = storage.NewMemoryStore()
		tokens = storage.NewMemoryStore()
	}
	return sessions, orderRecs, tokens, nil
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync()

	// AWS clients are only needed for the dynamo backend, order events, or
	// metrics; the pure in-memory sandbox runs without credentials.
	var clients *internalaws.Clients
	needAWS := cfg.StorageBackend == config.BackendDynamo ||
		cfg.OrderEventsQueueURL != "" || cfg.MetricsNamespace != ""
	if needAWS {
		clients, err = internalaws.NewClients(ctx)
		if err != nil {
			logger.Fatal("failed to init aws clients", zap.Error(err))
		}
	}

	sessionRecs, orderRecs, tokenRecs, err := buildStores(ctx, cfg, clients)
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err), zap.String("backend", cfg.StorageBackend))
	}

	orderStore := orders.NewStore(orderRecs, cfg.PermalinkBase)
	engine := checkout.NewEngine(checkout.NewSessionStore(sessionRecs), orderStore)
	issuer := delegation.NewIssuer(tokenRecs)

	var publisher *internalaws.Publisher
	if cfg.OrderEventsQueueURL != "" {
		publisher = internalaws.NewPublisher(clients.SQS, cfg.OrderEventsQueueURL)
	}
	var metrics *internalaws.MetricsReporter
	if cfg.MetricsNamespace != "" {
		metrics = internalaws.NewMetricsReporter(clients.CloudWatch, cfg.MetricsNamespace)
	}

	r := setupRouter(handlers.Deps{
		Engine:     engine,
		Issuer:     issuer,
		Orders:     orderStore,
		Publisher:  publisher,
		Metrics:    metrics,
		Logger:     logger,
		APIVersion: cfg.APIVersion,
	}, logger)

	if cfg.RunLocal {
		logger.Info("running local server",
			zap.String("addr", cfg.Addr),
			zap.String("backend", cfg.StorageBackend),
			zap.String("api_version", cfg.APIVersion),
		)
		if err := r.Run(cfg.Addr); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	adapter := ginadapter.New(r)
	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
