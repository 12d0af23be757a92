package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"affiliate-service/internal/consumers"
	"affiliate-service/internal/services"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Processor *consumers.WithdrawalProcessor
}

func NewWorker(processor *consumers.WithdrawalProcessor) *Worker {
	return &Worker{Processor: processor}
}

func (w *Worker) HandleWithdrawalRequest(ctx context.Context, t *asynq.Task) error {
	var p services.WithdrawalJobDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	return w.Processor.ProcessWithdrawalRequest(p)
}

// Run blocks serving queue tasks until the process exits.
func (w *Worker) Run(redisAddr string) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(services.TypeWithdrawalRequest, w.HandleWithdrawalRequest)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("Could not run worker server: %v", err)
	}
}
