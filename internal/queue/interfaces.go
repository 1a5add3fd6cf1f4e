package queue

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/domain"
)

// QueuePublisher defines the interface for publishing raw events to the
// intake queue
type QueuePublisher interface {
	PublishRawEvent(ctx context.Context, raw *domain.RawEvent, eventID string) error
}

// QueueConsumer defines the interface for consuming messages from a queue
type QueueConsumer interface {
	ReceiveMessages(ctx context.Context, input *sqs.ReceiveMessageInput) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, input *sqs.DeleteMessageInput) (*sqs.DeleteMessageOutput, error)
	QueueURL() string
}
