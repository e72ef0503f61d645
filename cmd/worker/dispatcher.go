package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	internalaws "github.com/mockcommerce/checkout-sandbox/internal/aws"
)

// Dispatcher consumes order.created events from SQS and forwards them to the
// configured webhook endpoint. With no endpoint configured it only logs,
// which is the sandbox default.
type Dispatcher struct {
	webhookURL string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDispatcher builds a dispatcher. webhookURL may be empty.
func NewDispatcher(webhookURL string, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// Handle processes an SQS batch. A failing record fails the batch so the
// queue redrives it.
func (d *Dispatcher) Handle(ctx context.Context, event events.SQSEvent) error {
	for _, rec := range event.Records {
		if err := d.dispatch(ctx, rec); err != nil {
			d.logger.Error("dispatch failed", zap.String("message_id", rec.MessageId), zap.Error(err))
			return err
		}
	}
	return nil
}

func (d *Dispatcher) dispatch(ctx context.Context, rec events.SQSMessage) error {
	var ev internalaws.OrderCreatedEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid event body: %w", err)
	}

	d.logger.Info("order event received",
		zap.String("order_id", ev.OrderID),
		zap.String("checkout_session_id", ev.CheckoutSessionID),
	)

	if d.webhookURL == "" {
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"type": "order.created",
		"data": ev,
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("deliver webhook: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook endpoint returned %d", resp.StatusCode)
	}

	d.logger.Info("webhook delivered",
		zap.String("order_id", ev.OrderID),
		zap.Int("status", resp.StatusCode),
	)
	return nil
}
