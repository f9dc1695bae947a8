package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	orderRepo "solecare/database/repository/order"
	"solecare/models"
)

// --- in-memory fakes ---

type memStore struct {
	sessions map[string]*models.BookingSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*models.BookingSession)}
}

func (m *memStore) Save(_ context.Context, s *models.BookingSession) error {
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, id string) (*models.BookingSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type fakePayment struct {
	createCalls int
	failCreate  bool
	verifyErr   error
	// amounts remembers what each intent was created over, so verification
	// can reject a confirm whose quote has drifted, like the real provider.
	amounts map[string]int64
}

func (f *fakePayment) CreateIntent(_ context.Context, amount int64) (string, string, error) {
	if f.failCreate {
		return "", "", errors.New("provider unavailable")
	}
	f.createCalls++
	intentID := fmt.Sprintf("pi-%d", f.createCalls)
	if f.amounts == nil {
		f.amounts = make(map[string]int64)
	}
	f.amounts[intentID] = amount
	return fmt.Sprintf("secret-%d", f.createCalls), intentID, nil
}

func (f *fakePayment) VerifyIntent(_ context.Context, intentID string, amount int64) error {
	if f.verifyErr != nil {
		return f.verifyErr
	}
	if created, ok := f.amounts[intentID]; ok && created != amount {
		return fmt.Errorf("%w: intent %s captured %d, order requires %d",
			ErrPaymentNotSettled, intentID, created, amount)
	}
	return nil
}

type fakeAvailability struct {
	times map[string][]string
}

func (f *fakeAvailability) AvailableDates(_ context.Context) ([]string, error) {
	var dates []string
	for d := range f.times {
		dates = append(dates, d)
	}
	return dates, nil
}

func (f *fakeAvailability) AvailableTimes(_ context.Context, date string) ([]string, error) {
	return f.times[date], nil
}

func (f *fakeAvailability) SetDay(_ context.Context, date string, times []string) error {
	f.times[date] = times
	return nil
}

func (f *fakeAvailability) AddSlot(_ context.Context, date, t string) error {
	f.times[date] = append(f.times[date], t)
	return nil
}

func (f *fakeAvailability) RemoveSlot(_ context.Context, date, t string) error {
	times := f.times[date]
	for i, v := range times {
		if v == t {
			f.times[date] = append(times[:i], times[i+1:]...)
			return nil
		}
	}
	return errors.New("slot not found")
}

type fakeOrders struct {
	created    []models.Order
	failCreate bool
}

func (f *fakeOrders) Create(_ context.Context, o *models.Order) error {
	if f.failCreate {
		return errors.New("write failed")
	}
	o.CreatedAt = time.Now()
	f.created = append(f.created, *o)
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id string) (*models.Order, error) {
	for i := range f.created {
		if f.created[i].ID == id {
			return &f.created[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeOrders) List(_ context.Context, _ orderRepo.ListFilter) ([]models.Order, error) {
	return f.created, nil
}

func (f *fakeOrders) UpdateStatus(_ context.Context, id, status string) error {
	for i := range f.created {
		if f.created[i].ID == id {
			f.created[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

type fakeOutbox struct {
	slotRemovals  [][2]string
	orderPersists []models.Order
	emails        []models.Order
}

func (f *fakeOutbox) EnqueueSlotRemoval(_ context.Context, date, t string) error {
	f.slotRemovals = append(f.slotRemovals, [2]string{date, t})
	return nil
}

func (f *fakeOutbox) EnqueueOrderPersist(_ context.Context, o models.Order) error {
	f.orderPersists = append(f.orderPersists, o)
	return nil
}

func (f *fakeOutbox) EnqueueConfirmationEmail(_ context.Context, o models.Order) error {
	f.emails = append(f.emails, o)
	return nil
}

// --- test harness ---

const (
	testDate = "2026-09-10"
	testTime = "11:30"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

type fixture struct {
	svc     *DefaultBookingSessionService
	store   *memStore
	payment *fakePayment
	avail   *fakeAvailability
	orders  *fakeOrders
	outbox  *fakeOutbox
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   newMemStore(),
		payment: &fakePayment{},
		avail:   &fakeAvailability{times: map[string][]string{testDate: {"09:00", testTime}}},
		orders:  &fakeOrders{},
		outbox:  &fakeOutbox{},
	}
	f.svc = &DefaultBookingSessionService{
		Store:        f.store,
		Payment:      f.payment,
		Availability: f.avail,
		Orders:       f.orders,
		Outbox:       f.outbox,
		MaxQuantity:  50,
		Now:          func() time.Time { return testNow },
	}
	return f
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }

// validDetailsPatch fills every field needed to walk the whole wizard.
func validDetailsPatch() *BookingPatch {
	return &BookingPatch{
		ServiceID:      strPtr("standard"),
		Quantity:       intPtr(2),
		Repaint:        boolPtr(true),
		DeliveryMethod: strPtr(models.DeliveryCollection),
		BookingDate:    strPtr(testDate),
		BookingTime:    strPtr(testTime),
		FullName:       strPtr("Jordan Blake"),
		Email:          strPtr("jordan@example.com"),
		PickupAddress:  strPtr("12 High Street, Leeds"),
	}
}

// walkToConfirm drives a fresh session to the confirm step.
func walkToConfirm(t *testing.T, f *fixture) *models.BookingSession {
	t.Helper()
	ctx := context.Background()

	session, err := f.svc.StartSession(ctx)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	session, err = f.svc.UpdateSession(ctx, session.ID, UpdateInput{Booking: validDetailsPatch()})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	for i := 0; i < models.StepCount-1; i++ {
		session, err = f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance})
		if err != nil {
			t.Fatalf("advance from step %d: %v", i, err)
		}
	}
	return session
}

// --- tests ---

func TestWizardHappyPath(t *testing.T) {
	f := newFixture(t)
	session := walkToConfirm(t, f)

	if session.Step != models.StepConfirm {
		t.Fatalf("step = %d, want %d", session.Step, models.StepConfirm)
	}
	// standard £30 x2 plus repaint £20 x2
	if session.TotalCost != 100 {
		t.Fatalf("total = %v, want 100", session.TotalCost)
	}
	if session.ClientSecret == "" || session.PaymentIntentID == "" {
		t.Fatal("expected payment intent on confirm step")
	}
	if f.payment.createCalls != 1 {
		t.Fatalf("intent created %d times, want 1", f.payment.createCalls)
	}
}

func TestServiceStepValidation(t *testing.T) {
	tests := []struct {
		name      string
		serviceID string
		quantity  int
		wantField string
	}{
		{name: "unknown service", serviceID: "platinum", quantity: 1, wantField: "serviceId"},
		{name: "zero quantity", serviceID: "standard", quantity: 0, wantField: "quantity"},
		{name: "over max quantity", serviceID: "standard", quantity: 51, wantField: "quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()
			session, _ := f.svc.StartSession(ctx)

			_, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{
				Booking: &BookingPatch{ServiceID: strPtr(tt.serviceID), Quantity: intPtr(tt.quantity)},
				Action:  ActionAdvance,
			})
			assertFieldError(t, err, tt.wantField)
		})
	}
}

func TestPickupAddressRule(t *testing.T) {
	tests := []struct {
		name     string
		delivery string
		address  string
		wantErr  bool
	}{
		{name: "collection with full address", delivery: models.DeliveryCollection, address: "12 High St", wantErr: false},
		{name: "collection with short address", delivery: models.DeliveryCollection, address: "Flat 2", wantErr: true},
		{name: "dropoff needs no address", delivery: models.DeliveryDropoff, address: "", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := models.Booking{
				FullName:       "Jordan Blake",
				Email:          "jordan@example.com",
				DeliveryMethod: tt.delivery,
				PickupAddress:  tt.address,
			}
			errs := validateStep(models.StepDetails, b, 50, nil, testNow)
			if tt.wantErr && len(errs) == 0 {
				t.Fatal("expected pickup address error")
			}
			if !tt.wantErr && len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if tt.wantErr && errs[0].Field != "pickupAddress" {
				t.Fatalf("field = %s, want pickupAddress", errs[0].Field)
			}
		})
	}
}

func TestDateChangeClearsTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session, _ := f.svc.StartSession(ctx)

	session, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{
		Booking: &BookingPatch{BookingDate: strPtr(testDate), BookingTime: strPtr(testTime)},
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if session.Booking.BookingTime != testTime {
		t.Fatalf("time = %q, want %q", session.Booking.BookingTime, testTime)
	}

	session, err = f.svc.UpdateSession(ctx, session.ID, UpdateInput{
		Booking: &BookingPatch{BookingDate: strPtr("2026-09-11")},
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if session.Booking.BookingTime != "" {
		t.Fatalf("time survived a date change: %q", session.Booking.BookingTime)
	}
}

func TestEmptyDayBlocksSchedule(t *testing.T) {
	f := newFixture(t)
	f.avail.times["2026-09-12"] = nil
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx)
	patch := validDetailsPatch()
	patch.BookingDate = strPtr("2026-09-12")
	if _, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Booking: patch}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	// service and delivery steps pass
	for i := 0; i < 2; i++ {
		if _, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance}); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	_, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance})
	assertFieldError(t, err, "bookingTime")
}

func TestRetreatInvalidatesPaymentSecret(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := walkToConfirm(t, f)

	session, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionRetreat})
	if err != nil {
		t.Fatalf("retreat: %v", err)
	}
	if session.ClientSecret != "" || session.PaymentIntentID != "" {
		t.Fatal("retreat must discard the payment secret")
	}
	if session.Step != models.StepDetails {
		t.Fatalf("step = %d, want %d", session.Step, models.StepDetails)
	}

	session, err = f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance})
	if err != nil {
		t.Fatalf("re-advance: %v", err)
	}
	if f.payment.createCalls != 2 {
		t.Fatalf("intent created %d times, want 2 (fresh intent on re-entry)", f.payment.createCalls)
	}
	if session.ClientSecret != "secret-2" {
		t.Fatalf("secret = %q, want secret-2", session.ClientSecret)
	}
}

func TestPatchOnConfirmStepVoidsIntent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	session := walkToConfirm(t, f)

	// Bump the quantity after the £100 intent was minted.
	session, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{
		Booking: &BookingPatch{Quantity: intPtr(10)},
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	if session.Step != models.StepDetails {
		t.Fatalf("step = %d, want %d (edit must force back to details)", session.Step, models.StepDetails)
	}
	if session.ClientSecret != "" || session.PaymentIntentID != "" {
		t.Fatal("edit after intent creation must void the intent")
	}
	// standard £30 x10 plus repaint £20 x10
	if session.TotalCost != 500 {
		t.Fatalf("total = %v, want 500", session.TotalCost)
	}

	// Confirming against the stale intent is impossible now.
	if _, err := f.svc.Confirm(ctx, session.ID); err == nil {
		t.Fatal("confirm must fail after the intent was voided")
	}
	if len(f.orders.created) != 0 {
		t.Fatalf("orders written = %d, want 0", len(f.orders.created))
	}

	// Advancing again mints a fresh intent over the new quote.
	session, err = f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance})
	if err != nil {
		t.Fatalf("re-advance: %v", err)
	}
	if f.payment.createCalls != 2 {
		t.Fatalf("intent created %d times, want 2", f.payment.createCalls)
	}
	if f.payment.amounts[session.PaymentIntentID] != 50000 {
		t.Fatalf("fresh intent amount = %d, want 50000", f.payment.amounts[session.PaymentIntentID])
	}
	if _, err := f.svc.Confirm(ctx, session.ID); err != nil {
		t.Fatalf("confirm after repricing: %v", err)
	}
	if len(f.orders.created) != 1 || f.orders.created[0].TotalCost != 500 {
		t.Fatalf("orders = %+v, want one at 500", f.orders.created)
	}
}

func TestPaymentFailureBlocksAdvance(t *testing.T) {
	f := newFixture(t)
	f.payment.failCreate = true
	ctx := context.Background()

	session, _ := f.svc.StartSession(ctx)
	if _, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Booking: validDetailsPatch()}); err != nil {
		t.Fatalf("patch: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance}); err != nil {
			t.Fatalf("advance %d: %v", i, err)
		}
	}

	_, err := f.svc.UpdateSession(ctx, session.ID, UpdateInput{Action: ActionAdvance})
	var pErr *PaymentError
	if !errors.As(err, &pErr) {
		t.Fatalf("want PaymentError, got %v", err)
	}

	// Entered data survives the failure and the wizard stays on details.
	stored, err := f.svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Step != models.StepDetails {
		t.Fatalf("step = %d, want %d", stored.Step, models.StepDetails)
	}
	if stored.Booking.FullName != "Jordan Blake" {
		t.Fatalf("entered data lost: %+v", stored.Booking)
	}
}

func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	for _, f := range vErr.Fields {
		if f.Field == field {
			return
		}
	}
	t.Fatalf("no error for field %q in %v", field, vErr.Fields)
}
