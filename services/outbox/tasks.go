package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"solecare/config"
	"solecare/models"
)

// Task types processed by the outbox worker. Everything enqueued here must be
// safe to retry: payment has already succeeded by the time these run.
const (
	TypeSlotRemove        = "slot:remove"
	TypeOrderPersist      = "order:persist"
	TypeConfirmationEmail = "email:confirmation"
)

const queueName = "outbox"

// SlotRemovePayload closes the booked (date, time) slot.
type SlotRemovePayload struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// OrderPersistPayload re-attempts an order write that failed after payment.
type OrderPersistPayload struct {
	Order models.Order `json:"order"`
}

// ConfirmationEmailPayload sends the booking confirmation email.
type ConfirmationEmailPayload struct {
	Order models.Order `json:"order"`
}

// Enqueuer hands side effects to the outbox.
type Enqueuer interface {
	EnqueueSlotRemoval(ctx context.Context, date, time string) error
	EnqueueOrderPersist(ctx context.Context, order models.Order) error
	EnqueueConfirmationEmail(ctx context.Context, order models.Order) error
}

// Client is the asynq-backed Enqueuer.
type Client struct {
	client *asynq.Client
}

// NewClient constructs an outbox client over the configured Redis queue DB.
func NewClient() *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisOutboxDB,
		}),
	}
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload interface{}, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}
	task := asynq.NewTask(taskType, data)
	opts = append(opts, asynq.Queue(queueName))
	if _, err := c.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", taskType, err)
	}
	return nil
}

func (c *Client) EnqueueSlotRemoval(ctx context.Context, date, slotTime string) error {
	return c.enqueue(ctx, TypeSlotRemove, SlotRemovePayload{Date: date, Time: slotTime},
		asynq.MaxRetry(10), asynq.Timeout(10*time.Second))
}

func (c *Client) EnqueueOrderPersist(ctx context.Context, order models.Order) error {
	return c.enqueue(ctx, TypeOrderPersist, OrderPersistPayload{Order: order},
		asynq.MaxRetry(25), asynq.Timeout(10*time.Second))
}

func (c *Client) EnqueueConfirmationEmail(ctx context.Context, order models.Order) error {
	return c.enqueue(ctx, TypeConfirmationEmail, ConfirmationEmailPayload{Order: order},
		asynq.MaxRetry(5), asynq.Timeout(30*time.Second))
}

// Close releases the underlying asynq client.
func (c *Client) Close() error {
	return c.client.Close()
}
