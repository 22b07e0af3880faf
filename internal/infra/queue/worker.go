package queue

import (
	"context"
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pipewise/pipewise/internal/usecase"
)

// ReportProcessor is implemented by usecase.GenerateReportUseCase.
type ReportProcessor interface {
	Process(ctx context.Context, payload usecase.ReportJobPayload) error
}

type Worker struct {
	Channel   *amqp.Channel
	Processor ReportProcessor
}

func NewWorker(ch *amqp.Channel, processor ReportProcessor) *Worker {
	return &Worker{Channel: ch, Processor: processor}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // manual ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("failed to register report consumer: %s", err)
	}

	log.Printf("report worker waiting on queue %q", queueName)

	for d := range msgs {
		var payload usecase.ReportJobPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			log.Printf("report worker: malformed job, sending to DLQ: %s", err)
			d.Nack(false, false)
			continue
		}

		if err := w.Processor.Process(context.Background(), payload); err != nil {
			// The usecase already marked the report FAILED where it
			// could; no requeue, the DLQ keeps the evidence.
			log.Printf("report worker: job %s failed: %s", payload.ReportID, err)
			d.Nack(false, false)
			continue
		}

		d.Ack(false)
	}
}
