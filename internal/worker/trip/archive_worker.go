package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/worker"
)

// ArchiveWorker сохраняет построенные планы поездок из Redis Stream в Postgres
type ArchiveWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	tripRepo     repository.TripRepository
	consumerName string
	maxRetries   int
}

// NewArchiveWorker создает новый ArchiveWorker
func NewArchiveWorker(
	streamRepo repository.StreamRepository,
	tripRepo repository.TripRepository,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *ArchiveWorker {
	hostname, _ := os.Hostname()
	consumerName := fmt.Sprintf("%s-%d", hostname, os.Getpid())

	return &ArchiveWorker{
		BaseWorker:   worker.NewBaseWorker("trip-archive", consumerGroup, logger),
		streamRepo:   streamRepo,
		tripRepo:     tripRepo,
		consumerName: consumerName,
		maxRetries:   maxRetries,
	}
}

// Start запускает воркер
func (w *ArchiveWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting ArchiveWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	// Создаем consumer group
	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTripPlanned, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamTripPlanned, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	// Основной цикл обработки
	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream channel closed")
				return nil
			}
			w.processMessage(ctx, msg)
		}
	}
}

// processMessage сохраняет один план; подтверждение только после успешной записи
func (w *ArchiveWorker) processMessage(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger()

	var plan domain.TripPlan
	if err := json.Unmarshal([]byte(msg.Data), &plan); err != nil {
		logger.Error("Failed to unmarshal trip plan, dropping message",
			zap.String("message_id", msg.ID),
			zap.Error(err))
		// Сообщение битое, повторная доставка не поможет
		w.ack(ctx, msg.ID)
		return
	}

	var saveErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if saveErr = w.tripRepo.Save(ctx, &plan); saveErr == nil {
			break
		}
		logger.Warn("Failed to save trip plan, retrying",
			zap.String("trip_id", plan.TripID),
			zap.Int("attempt", attempt+1),
			zap.Error(saveErr))
	}
	if saveErr != nil {
		// Без ack: сообщение останется в pending и будет переобработано
		logger.Error("Giving up on trip plan for now",
			zap.String("trip_id", plan.TripID),
			zap.Error(saveErr))
		return
	}

	logger.Info("Trip plan archived", zap.String("trip_id", plan.TripID))
	w.ack(ctx, msg.ID)
}

func (w *ArchiveWorker) ack(ctx context.Context, messageID string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamTripPlanned, w.ConsumerGroup(), messageID); err != nil {
		w.Logger().Error("Failed to ack message",
			zap.String("message_id", messageID),
			zap.Error(err))
	}
}
