// Package ingest consumes raw events from the intake queue and stores them
// as tiered, deduplicated events. The pipeline has three stages connected by
// channels: receive, parse, write.
package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/config"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/queue"
	"github.com/hankthevc/AGITracker-audit-mirror-sub002/internal/repository"
)

// Pipeline orchestrates the ingest stages over the intake queue
type Pipeline struct {
	receiver *Receiver
	parser   *ParserStage
	writer   *Writer
	buffer   int
}

// NewPipeline creates a new ingest pipeline
func NewPipeline(
	cfg *config.Config,
	queueConsumer queue.QueueConsumer,
	events repository.EventRepository,
	sources repository.SourceRepository,
	runs repository.RunRepository,
	log *zap.Logger,
) *Pipeline {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      cfg.Consumer.BufferSize,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONRawEventParser(), log)

	writer := NewWriter(events, sources, runs, WriterConfig{
		RunFlushInterval: time.Duration(cfg.Consumer.RunFlushSec) * time.Second,
	}, log)

	return &Pipeline{
		receiver: receiver,
		parser:   parser,
		writer:   writer,
		buffer:   cfg.Consumer.BufferSize,
	}
}

// Start begins the ingest pipeline and blocks until the context is canceled
// and all stages have drained.
func (p *Pipeline) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, p.buffer)
	envelopeChan := make(chan *Envelope, p.buffer)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		p.receiver.Start(ctx, messageChan)
	}()

	go func() {
		defer wg.Done()
		p.parser.Start(ctx, messageChan, envelopeChan)
	}()

	go func() {
		defer wg.Done()
		p.writer.Start(ctx, envelopeChan)
	}()

	wg.Wait()
	return nil
}
