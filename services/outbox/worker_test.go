package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"

	orderRepo "solecare/database/repository/order"
	"solecare/models"
)

type scriptedOrders struct {
	getErr    error
	existing  *models.Order
	createErr error
	created   []models.Order
}

func (s *scriptedOrders) Create(_ context.Context, o *models.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, *o)
	return nil
}

func (s *scriptedOrders) GetByID(_ context.Context, _ string) (*models.Order, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.existing, nil
}

func (s *scriptedOrders) List(_ context.Context, _ orderRepo.ListFilter) ([]models.Order, error) {
	return s.created, nil
}

func (s *scriptedOrders) UpdateStatus(_ context.Context, _, _ string) error { return nil }

type recordingEnqueuer struct {
	slotRemovals [][2]string
	emails       []models.Order
}

func (r *recordingEnqueuer) EnqueueSlotRemoval(_ context.Context, date, t string) error {
	r.slotRemovals = append(r.slotRemovals, [2]string{date, t})
	return nil
}

func (r *recordingEnqueuer) EnqueueOrderPersist(_ context.Context, _ models.Order) error {
	return nil
}

func (r *recordingEnqueuer) EnqueueConfirmationEmail(_ context.Context, o models.Order) error {
	r.emails = append(r.emails, o)
	return nil
}

type scriptedAvailability struct {
	removeErr error
	removed   [][2]string
}

func (s *scriptedAvailability) GetAllDays(_ context.Context) ([]models.AvailabilityDay, error) {
	return nil, nil
}

func (s *scriptedAvailability) GetTimes(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (s *scriptedAvailability) SetDay(_ context.Context, _ string, _ []string) error { return nil }

func (s *scriptedAvailability) AddSlot(_ context.Context, _, _ string) error { return nil }

func (s *scriptedAvailability) RemoveSlot(_ context.Context, date, t string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	s.removed = append(s.removed, [2]string{date, t})
	return nil
}

func orderPersistTask(t *testing.T, order models.Order) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(OrderPersistPayload{Order: order})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return asynq.NewTask(TypeOrderPersist, data)
}

var replayOrder = models.Order{
	ID:          "ord-1",
	BookingDate: "2026-09-10",
	BookingTime: "11:30",
	Email:       "jordan@example.com",
	TotalCost:   100,
}

func TestOrderPersistReplaysAndChains(t *testing.T) {
	orders := &scriptedOrders{getErr: mongo.ErrNoDocuments}
	queue := &recordingEnqueuer{}
	w := &Worker{Orders: orders, Outbox: queue}

	if err := w.handleOrderPersist(context.Background(), orderPersistTask(t, replayOrder)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(orders.created) != 1 || orders.created[0].ID != "ord-1" {
		t.Fatalf("created = %+v, want one ord-1", orders.created)
	}
	if len(queue.slotRemovals) != 1 || queue.slotRemovals[0] != [2]string{"2026-09-10", "11:30"} {
		t.Fatalf("slot removals = %v", queue.slotRemovals)
	}
	if len(queue.emails) != 1 {
		t.Fatalf("emails = %d, want 1", len(queue.emails))
	}
}

func TestOrderPersistSkipsExistingOrder(t *testing.T) {
	orders := &scriptedOrders{existing: &replayOrder}
	queue := &recordingEnqueuer{}
	w := &Worker{Orders: orders, Outbox: queue}

	if err := w.handleOrderPersist(context.Background(), orderPersistTask(t, replayOrder)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(orders.created) != 0 {
		t.Fatalf("created = %+v, want none", orders.created)
	}
}

func TestOrderPersistRetriesOnLookupFailure(t *testing.T) {
	// A transient read error must not be read as "order missing": inserting
	// on that assumption is how duplicates are born.
	orders := &scriptedOrders{getErr: errors.New("connection reset")}
	w := &Worker{Orders: orders, Outbox: &recordingEnqueuer{}}

	if err := w.handleOrderPersist(context.Background(), orderPersistTask(t, replayOrder)); err == nil {
		t.Fatal("expected retryable error on lookup failure")
	}
	if len(orders.created) != 0 {
		t.Fatalf("created = %+v, want none", orders.created)
	}
}

func TestOrderPersistTreatsDuplicateKeyAsDone(t *testing.T) {
	orders := &scriptedOrders{
		getErr:    mongo.ErrNoDocuments,
		createErr: mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}},
	}
	w := &Worker{Orders: orders, Outbox: &recordingEnqueuer{}}

	if err := w.handleOrderPersist(context.Background(), orderPersistTask(t, replayOrder)); err != nil {
		t.Fatalf("duplicate insert must count as success, got %v", err)
	}
}

func TestSlotRemoveToleratesMissingSlot(t *testing.T) {
	data, err := json.Marshal(SlotRemovePayload{Date: "2026-09-10", Time: "11:30"})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	task := asynq.NewTask(TypeSlotRemove, data)

	avail := &scriptedAvailability{removeErr: mongo.ErrNoDocuments}
	w := &Worker{Availability: avail}

	if err := w.handleSlotRemove(context.Background(), task); err != nil {
		t.Fatalf("already-removed slot must not fail the task: %v", err)
	}
}
