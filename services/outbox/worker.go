package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"solecare/config"
	availabilityRepo "solecare/database/repository/availability"
	orderRepo "solecare/database/repository/order"
	"solecare/services/mailer"
	"solecare/utils"
)

// Worker drains the outbox queue. Each handler is idempotent so asynq retries
// cannot double-apply a side effect.
type Worker struct {
	Orders       orderRepo.OrderRepository
	Availability availabilityRepo.AvailabilityRepository
	Mailer       mailer.Mailer
	// Outbox lets a replayed order write chain its own follow-up tasks.
	Outbox Enqueuer
}

// Run starts the asynq server in the background with retry on startup
// failure.
func (w *Worker) Run() {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisOutboxDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				queueName: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeSlotRemove, w.handleSlotRemove)
	mux.HandleFunc(TypeOrderPersist, w.handleOrderPersist)
	mux.HandleFunc(TypeConfirmationEmail, w.handleConfirmationEmail)

	go func() {
		log.Println("[Outbox] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Outbox] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Outbox] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func (w *Worker) handleSlotRemove(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	var p SlotRemovePayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("outbox: invalid slot removal payload", zap.Error(err))
		return err
	}

	err := w.Availability.RemoveSlot(ctx, p.Date, p.Time)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Slot already gone; a prior attempt or an admin edit beat us to it.
		return nil
	}
	if err != nil {
		logger.Warn("outbox: slot removal failed, will retry",
			zap.String("date", p.Date), zap.String("time", p.Time), zap.Error(err))
		return err
	}
	logger.Info("outbox: slot removed", zap.String("date", p.Date), zap.String("time", p.Time))
	return nil
}

func (w *Worker) handleOrderPersist(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	var p OrderPersistPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("outbox: invalid order persist payload", zap.Error(err))
		return err
	}

	// The order id was assigned before the first write attempt, so an earlier
	// partial success shows up here as an existing document. Only a definite
	// "no document" clears the way for an insert; a transient lookup failure
	// must retry, or a flaky read would let Create run twice.
	if _, err := w.Orders.GetByID(ctx, p.Order.ID); err == nil {
		return nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		logger.Warn("outbox: order lookup failed, will retry",
			zap.String("orderID", p.Order.ID), zap.Error(err))
		return err
	}

	if err := w.Orders.Create(ctx, &p.Order); err != nil {
		// The unique id index turns a racing duplicate insert into this error.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		logger.Warn("outbox: order persist failed, will retry",
			zap.String("orderID", p.Order.ID), zap.Error(err))
		return err
	}
	logger.Info("outbox: order persisted", zap.String("orderID", p.Order.ID))

	// The slot removal and confirmation email normally ride on the synchronous
	// confirm path; when the order write had to be replayed here they were
	// never queued, so the worker owns them now.
	if err := w.Outbox.EnqueueSlotRemoval(ctx, p.Order.BookingDate, p.Order.BookingTime); err != nil {
		logger.Error("outbox: failed to chain slot removal", zap.Error(err))
	}
	if err := w.Outbox.EnqueueConfirmationEmail(ctx, p.Order); err != nil {
		logger.Error("outbox: failed to chain confirmation email", zap.Error(err))
	}
	return nil
}

func (w *Worker) handleConfirmationEmail(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()
	var p ConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("outbox: invalid email payload", zap.Error(err))
		return err
	}

	if err := w.Mailer.SendOrderConfirmation(ctx, p.Order); err != nil {
		logger.Warn("outbox: confirmation email failed, will retry",
			zap.String("orderID", p.Order.ID), zap.Error(err))
		return err
	}
	logger.Info("outbox: confirmation email sent",
		zap.String("orderID", p.Order.ID), zap.String("email", p.Order.Email))
	return nil
}
