package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

// OrderCreatedEvent is published when a checkout session completes.
type OrderCreatedEvent struct {
	OrderID           string    `json:"order_id"`
	CheckoutSessionID string    `json:"checkout_session_id"`
	PermalinkURL      string    `json:"permalink_url"`
	CreatedAt         time.Time `json:"created_at"`
}

// Publisher sends order events to SQS. A nil Publisher is a no-op, so the
// transport layer can stay unconditional.
type Publisher struct {
	sqs      SQSAPI
	queueURL string
}

// NewPublisher binds a publisher to a queue URL.
func NewPublisher(sqsClient SQSAPI, queueURL string) *Publisher {
	return &Publisher{sqs: sqsClient, queueURL: queueURL}
}

// PublishOrderCreated sends the event with identifying message attributes.
func (p *Publisher) PublishOrderCreated(ctx context.Context, ev OrderCreatedEvent) error {
	if p == nil {
		return nil
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msgBody := string(body)
	input := &sqs.SendMessageInput{
		QueueUrl:    &p.queueURL,
		MessageBody: &msgBody,
		MessageAttributes: map[string]sqstypes.MessageAttributeValue{
			"event_type": {DataType: awsString("String"), StringValue: awsString("order.created")},
			"order_id":   {DataType: awsString("String"), StringValue: awsString(ev.OrderID)},
		},
	}
	if _, err := p.sqs.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func awsString(s string) *string { return &s }
