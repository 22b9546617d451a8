package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeslotRepo "maidly/database/repository/timeslot"
	"maidly/models"
	"maidly/services/availability"
	"maidly/services/calendar"
	"maidly/services/pricing"
	"maidly/services/promo"
)

// ---- in-memory fakes ----

type memBookingRepo struct {
	mu        sync.Mutex
	bookings  map[string]*models.Booking
	createErr error
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]*models.Booking{}}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) GetByIdempotencyKey(_ context.Context, key string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.IdempotencyKey == key {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memBookingRepo) Update(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *memBookingRepo) SetAssignment(_ context.Context, id, cleanerID, calendarEventID, notes string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || (b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed) {
		return false, nil
	}
	b.Status = models.BookingStatusConfirmed
	b.CleanerID = cleanerID
	b.CalendarEventID = calendarEventID
	b.AssignmentNotes = notes
	return true, nil
}

func (r *memBookingRepo) ClockIn(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingStatusConfirmed {
		return false, nil
	}
	b.Status = models.BookingStatusInProgress
	b.ClockInAt = &at
	return true, nil
}

func (r *memBookingRepo) ClockOut(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != models.BookingStatusInProgress {
		return false, nil
	}
	b.Status = models.BookingStatusCompleted
	b.ClockOutAt = &at
	return true, nil
}

func (r *memBookingRepo) Cancel(_ context.Context, id string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || (b.Status != models.BookingStatusPending && b.Status != models.BookingStatusConfirmed) {
		return false, nil
	}
	b.Status = models.BookingStatusCancelled
	b.CancelledAt = &at
	return true, nil
}

func (r *memBookingRepo) CountByCleanerDateSlot(_ context.Context, cleanerID, date, timeSlot string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if b.CleanerID == cleanerID && b.Date == date && b.TimeSlot == timeSlot &&
			b.Status != models.BookingStatusCancelled {
			n++
		}
	}
	return n, nil
}

func (r *memBookingRepo) ListByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) ListByDate(_ context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.Date == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBookingRepo) EnsureIndexes() error { return nil }

// memSlotRepo mirrors the guarded counter semantics of the real repository:
// lazy record creation and a check-and-increment that holds under the mutex.
type memSlotRepo struct {
	mu    sync.Mutex
	slots map[string]*models.TimeSlotAvailability
}

func newMemSlotRepo() *memSlotRepo {
	return &memSlotRepo{slots: map[string]*models.TimeSlotAvailability{}}
}

func slotKey(date, timeSlot string) string { return date + "|" + timeSlot }

func (r *memSlotRepo) seed(s models.TimeSlotAvailability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := s
	r.slots[slotKey(s.Date, s.TimeSlot)] = &cp
}

func (r *memSlotRepo) bookedCount(date, timeSlot string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotKey(date, timeSlot)]; ok {
		return s.BookedCount
	}
	return 0
}

func (r *memSlotRepo) GetByDateSlot(_ context.Context, date, timeSlot string) (*models.TimeSlotAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey(date, timeSlot)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSlotRepo) ListByDateRange(_ context.Context, fromDate, toDate string) ([]models.TimeSlotAvailability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.TimeSlotAvailability
	for _, s := range r.slots {
		if s.Date >= fromDate && s.Date <= toDate {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *memSlotRepo) EnsureSlot(_ context.Context, date, timeSlot string, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLocked(date, timeSlot, capacity)
	return nil
}

func (r *memSlotRepo) ensureLocked(date, timeSlot string, capacity int) *models.TimeSlotAvailability {
	key := slotKey(date, timeSlot)
	if s, ok := r.slots[key]; ok {
		return s
	}
	s := &models.TimeSlotAvailability{Date: date, TimeSlot: timeSlot, TotalCapacity: capacity}
	r.slots[key] = s
	return s
}

func (r *memSlotRepo) Reserve(_ context.Context, date, timeSlot string, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.ensureLocked(date, timeSlot, capacity)
	if s.Blocked || s.BookedCount >= s.TotalCapacity {
		return timeslotRepo.ErrSlotFull
	}
	s.BookedCount++
	return nil
}

func (r *memSlotRepo) Release(_ context.Context, date, timeSlot string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.slots[slotKey(date, timeSlot)]
	if !ok || s.BookedCount == 0 {
		return errors.New("release matched no timeslot")
	}
	s.BookedCount--
	return nil
}

func (r *memSlotRepo) SetBlocked(_ context.Context, date, timeSlot string, blocked bool, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.slots[slotKey(date, timeSlot)]; ok {
		s.Blocked = blocked
		s.BlockReason = reason
	}
	return nil
}

func (r *memSlotRepo) EnsureIndexes() error { return nil }

type memCleanerRepo struct {
	mu       sync.Mutex
	cleaners map[string]*models.Cleaner
	jobIncs  map[string]int
}

func newMemCleanerRepo(cleaners ...*models.Cleaner) *memCleanerRepo {
	r := &memCleanerRepo{cleaners: map[string]*models.Cleaner{}, jobIncs: map[string]int{}}
	for _, c := range cleaners {
		r.cleaners[c.ID] = c
	}
	return r
}

func (r *memCleanerRepo) Create(_ context.Context, c *models.Cleaner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleaners[c.ID] = c
	return nil
}

func (r *memCleanerRepo) GetByID(_ context.Context, id string) (*models.Cleaner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.cleaners[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCleanerRepo) Update(_ context.Context, c *models.Cleaner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleaners[c.ID] = c
	return nil
}

func (r *memCleanerRepo) ListActive(_ context.Context) ([]models.Cleaner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Cleaner
	for _, c := range r.cleaners {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *memCleanerRepo) IncrementJobs(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobIncs[id]++
	return nil
}

func (r *memCleanerRepo) EnsureIndexes() error { return nil }

type memServiceRepo struct {
	services map[string]models.Service
}

func newMemServiceRepo(services ...models.Service) *memServiceRepo {
	r := &memServiceRepo{services: map[string]models.Service{}}
	for _, s := range services {
		r.services[s.ID] = s
	}
	return r
}

func (r *memServiceRepo) Upsert(_ context.Context, s *models.Service) error {
	r.services[s.ID] = *s
	return nil
}

func (r *memServiceRepo) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memServiceRepo) GetByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		if s, ok := r.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memServiceRepo) ListActive(_ context.Context) ([]models.Service, error)   { return nil, nil }
func (r *memServiceRepo) ListALaCarte(_ context.Context) ([]models.Service, error) { return nil, nil }
func (r *memServiceRepo) EnsureIndexes() error                                     { return nil }

type memPromoRepo struct {
	mu             sync.Mutex
	promos         map[string]*models.PromoCode
	usage          []models.PromoCodeUsage
	recordCalls    int
	incrementCalls int
}

func newMemPromoRepo(promos ...*models.PromoCode) *memPromoRepo {
	r := &memPromoRepo{promos: map[string]*models.PromoCode{}}
	for _, p := range promos {
		r.promos[p.Code] = p
	}
	return r
}

func (r *memPromoRepo) Create(_ context.Context, p *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.promos[p.Code] = p
	return nil
}

func (r *memPromoRepo) GetByCode(_ context.Context, code string) (*models.PromoCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.promos[strings.ToUpper(code)]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memPromoRepo) SetActive(_ context.Context, id string, active bool) error { return nil }

func (r *memPromoRepo) IncrementUsage(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.incrementCalls++
	for _, p := range r.promos {
		if p.ID == id {
			p.UsageCount++
		}
	}
	return nil
}

func (r *memPromoRepo) CountUsageByCustomer(_ context.Context, promoID, customerID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.usage {
		if u.PromoID == promoID && u.CustomerID == customerID {
			n++
		}
	}
	return n, nil
}

func (r *memPromoRepo) RecordUsage(_ context.Context, u *models.PromoCodeUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordCalls++
	r.usage = append(r.usage, *u)
	return nil
}

func (r *memPromoRepo) ListUsage(_ context.Context, promoID string) ([]models.PromoCodeUsage, error) {
	return nil, nil
}

func (r *memPromoRepo) EnsureIndexes() error { return nil }

type fakeCalendar struct {
	events    []calendar.Event
	listErr   error
	createErr error
}

func (c *fakeCalendar) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]calendar.Event, error) {
	return c.events, c.listErr
}

func (c *fakeCalendar) CreateEvent(_ context.Context, _ string, _ calendar.Event) (string, error) {
	if c.createErr != nil {
		return "", c.createErr
	}
	return "gcal-evt-1", nil
}

type fakePayment struct {
	err   error
	calls int
}

func (p *fakePayment) CreatePaymentIntent(_ context.Context, amount float64, currency, customerRef, bookingID string) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return "pi_test_123", nil
}

type fakeNotifier struct {
	assigned  int
	completed int
	pushes    int
}

func (n *fakeNotifier) NotifyCleanerAssigned(_ context.Context, _ *models.Cleaner, _ *models.Booking) error {
	n.assigned++
	return nil
}

func (n *fakeNotifier) NotifyJobCompleted(_ context.Context, _ *models.Cleaner, _ *models.Booking) error {
	n.completed++
	return nil
}

func (n *fakeNotifier) SendCleanerPush(_ context.Context, _ *models.Cleaner, _, _ string, _ map[string]string) error {
	n.pushes++
	return nil
}

// ---- test harness ----

type engineFixture struct {
	engine   *DefaultEngine
	bookings *memBookingRepo
	slots    *memSlotRepo
	cleaners *memCleanerRepo
	promos   *memPromoRepo
	calendar *fakeCalendar
	payments *fakePayment
	notifier *fakeNotifier
}

func ovenPrice() *float64 {
	p := 45.0
	return &p
}

func newFixture() *engineFixture {
	bookings := newMemBookingRepo()
	slots := newMemSlotRepo()
	cleaners := newMemCleanerRepo(
		&models.Cleaner{ID: "cl-1", FirstName: "Ana", LastName: "Reyes", Active: true},
		&models.Cleaner{ID: "cl-cal", FirstName: "Ben", LastName: "Ortiz", Active: true,
			CalendarIntegration: true, CalendarRef: "cal-ben"},
	)
	promos := newMemPromoRepo(&models.PromoCode{
		ID: "promo-1", Code: "SPRING20", Active: true,
		DiscountType: models.DiscountTypePercentage, DiscountValue: 20,
	})
	services := newMemServiceRepo(
		models.Service{ID: "svc-oven", Name: "Clean Oven", Price: ovenPrice(), IsALaCarte: true, Active: true},
		models.Service{ID: "svc-base", Name: "Dust Baseboards", IsALaCarte: true, Active: true},
	)
	cal := &fakeCalendar{}
	pay := &fakePayment{}
	notif := &fakeNotifier{}
	validator := promo.NewValidator(promos)

	avail := &availability.Service{
		Slots:       slots,
		Bookings:    bookings,
		Calendar:    cal,
		TimeSlots:   []string{"08:00-10:00", "10:00-12:00"},
		HorizonDays: 30,
	}

	engine := &DefaultEngine{
		Bookings:            bookings,
		Cleaners:            cleaners,
		Services:            services,
		Slots:               slots,
		Availability:        avail,
		Pricing:             pricing.NewCalculator(pricing.DefaultConfig()),
		Promo:               validator,
		Calendar:            cal,
		Payments:            pay,
		Notifier:            notif,
		ServiceAreaZips:     []string{"75001", "75002"},
		DefaultSlotCapacity: 3,
	}

	return &engineFixture{
		engine:   engine,
		bookings: bookings,
		slots:    slots,
		cleaners: cleaners,
		promos:   promos,
		calendar: cal,
		payments: pay,
		notifier: notif,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validInput() models.CreateBookingInput {
	return models.CreateBookingInput{
		CustomerID: "cust-1",
		HouseSize:  "2000-2500",
		Frequency:  models.FrequencyWeekly,
		Rooms:      models.RoomSelection{Kitchen: true, Bedrooms: 2},
		Date:       futureDate(),
		TimeSlot:   "08:00-10:00",
		ZipCode:    "75001",
		Address:    "12 Main St",
	}
}

func codeOf(t *testing.T, err error) string {
	t.Helper()
	var be *BookingError
	require.ErrorAs(t, err, &be)
	return be.Code
}

// ---- quote ----

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("itemized totals", func(t *testing.T) {
		f := newFixture()
		q, err := f.engine.Quote(ctx, models.QuoteInput{
			HouseSize: "2000-2500",
			Frequency: models.FrequencyWeekly,
			Rooms:     models.RoomSelection{Kitchen: true, Bedrooms: 2},
			ALaCarte:  []models.ALaCarteRequest{{ServiceID: "svc-oven", Quantity: 2}},
		})
		require.NoError(t, err)

		assert.Equal(t, 45.0, q.BasePrice)
		assert.Equal(t, 40.0, q.RoomPrice) // kitchen 20 + 2 bedrooms * 10
		assert.Equal(t, 90.0, q.ALaCarteTotal)
		assert.Equal(t, 175.0, q.Subtotal)
		assert.Equal(t, 175.0, q.TotalAmount)
		assert.Equal(t, 0.0, q.DiscountAmount)
		// 3h base + 0.5h for one line item, rounded up.
		assert.Equal(t, 4.0, q.EstimatedHours)
		require.Len(t, q.ALaCarteItems, 1)
		assert.Equal(t, 2, q.ALaCarteItems[0].Quantity)
		assert.Equal(t, 45.0, q.ALaCarteItems[0].UnitPrice)
	})

	t.Run("size-tiered add-on follows the band", func(t *testing.T) {
		f := newFixture()
		q, err := f.engine.Quote(ctx, models.QuoteInput{
			HouseSize: "3000-3500",
			Frequency: models.FrequencyMonthly,
			ALaCarte:  []models.ALaCarteRequest{{ServiceID: "svc-base", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, 30.0, q.ALaCarteItems[0].UnitPrice)
	})

	t.Run("promo folds into the total", func(t *testing.T) {
		f := newFixture()
		q, err := f.engine.Quote(ctx, models.QuoteInput{
			CustomerID: "cust-1",
			HouseSize:  "2000-2500",
			Frequency:  models.FrequencyWeekly,
			Rooms:      models.RoomSelection{Kitchen: true},
			PromoCode:  "SPRING20",
		})
		require.NoError(t, err)
		// 45 + 20 = 65, minus 20% = 52.
		assert.Equal(t, "SPRING20", q.PromoCode)
		assert.Equal(t, 13.0, q.DiscountAmount)
		assert.Equal(t, 52.0, q.TotalAmount)
	})

	t.Run("invalid promo is a typed failure", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.Quote(ctx, models.QuoteInput{
			HouseSize: "2000-2500",
			PromoCode: "NOPE",
		})
		require.Error(t, err)
		assert.Equal(t, CodeInvalidPromoCode, codeOf(t, err))
		assert.Contains(t, err.Error(), "Invalid promo code")
	})

	t.Run("quote makes no writes", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.Quote(ctx, models.QuoteInput{
			CustomerID: "cust-1",
			HouseSize:  "2000-2500",
			PromoCode:  "SPRING20",
		})
		require.NoError(t, err)
		assert.Zero(t, f.promos.recordCalls)
		assert.Zero(t, f.promos.incrementCalls)
	})

	t.Run("unknown add-on service fails", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.Quote(ctx, models.QuoteInput{
			HouseSize: "2000-2500",
			ALaCarte:  []models.ALaCarteRequest{{ServiceID: "svc-missing"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "svc-missing")
	})
}

// ---- creation ----

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		f := newFixture()
		in := validInput()

		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		require.NotNil(t, b)

		assert.NotEmpty(t, b.ID)
		assert.Equal(t, models.BookingStatusPending, b.Status)
		assert.Equal(t, 45.0, b.BasePrice)
		assert.Equal(t, 40.0, b.RoomPrice)
		assert.Equal(t, 85.0, b.TotalAmount)
		assert.Equal(t, 1, f.slots.bookedCount(in.Date, in.TimeSlot))

		stored, err := f.bookings.GetByID(ctx, b.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
	})

	t.Run("out of service area", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.ZipCode = "10001"

		_, err := f.engine.CreateBooking(ctx, in)
		require.Error(t, err)
		assert.Equal(t, CodeOutOfServiceArea, codeOf(t, err))
		assert.Zero(t, f.slots.bookedCount(in.Date, in.TimeSlot))
	})

	t.Run("missing schedule", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.TimeSlot = ""

		_, err := f.engine.CreateBooking(ctx, in)
		require.Error(t, err)
		assert.Equal(t, CodeMissingSchedule, codeOf(t, err))
	})

	t.Run("full slot is refused", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		f.slots.seed(models.TimeSlotAvailability{
			Date: in.Date, TimeSlot: in.TimeSlot, TotalCapacity: 3, BookedCount: 3,
		})

		_, err := f.engine.CreateBooking(ctx, in)
		require.Error(t, err)
		assert.Equal(t, CodeSlotUnavailable, codeOf(t, err))
		assert.Equal(t, 3, f.slots.bookedCount(in.Date, in.TimeSlot))
	})

	t.Run("blocked slot is refused", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		f.slots.seed(models.TimeSlotAvailability{
			Date: in.Date, TimeSlot: in.TimeSlot, TotalCapacity: 3, Blocked: true,
		})

		_, err := f.engine.CreateBooking(ctx, in)
		require.Error(t, err)
		assert.Equal(t, CodeSlotUnavailable, codeOf(t, err))
	})

	t.Run("promo applied exactly once", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.PromoCode = "SPRING20"

		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		// 85 minus 20% = 68.
		assert.Equal(t, 17.0, b.DiscountAmount)
		assert.Equal(t, 68.0, b.TotalAmount)
		assert.Equal(t, "SPRING20", b.PromoCode)
		assert.Equal(t, 1, f.promos.recordCalls)
		assert.Equal(t, 1, f.promos.incrementCalls)
	})

	t.Run("insert failure gives the slot unit back", func(t *testing.T) {
		f := newFixture()
		f.bookings.createErr = errors.New("write concern failed")
		in := validInput()

		_, err := f.engine.CreateBooking(ctx, in)
		require.Error(t, err)
		assert.Zero(t, f.slots.bookedCount(in.Date, in.TimeSlot))
		assert.Zero(t, f.promos.recordCalls)
	})

	t.Run("payment intent failure does not block the booking", func(t *testing.T) {
		f := newFixture()
		f.payments.err = errors.New("gateway down")
		in := validInput()
		in.PaymentProfile = "cus_abc"

		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, 1, f.payments.calls)
		assert.Empty(t, b.PaymentIntentID)
		assert.Equal(t, models.PaymentStatusUnpaid, b.PaymentStatus)
	})

	t.Run("payment intent success is stored", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.PaymentProfile = "cus_abc"

		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, "pi_test_123", b.PaymentIntentID)
		assert.Equal(t, models.PaymentStatusIntentCreated, b.PaymentStatus)

		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, "pi_test_123", stored.PaymentIntentID)
	})

	t.Run("no payment profile skips the gateway", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.CreateBooking(ctx, validInput())
		require.NoError(t, err)
		assert.Zero(t, f.payments.calls)
	})

	t.Run("idempotent replay returns the original", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		in.PromoCode = "SPRING20"
		in.IdempotencyKey = "idem-1"

		first, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		second, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, 1, f.slots.bookedCount(in.Date, in.TimeSlot))
		assert.Equal(t, 1, f.promos.recordCalls)
	})
}

func TestCreateBookingLastUnitRace(t *testing.T) {
	f := newFixture()
	in := validInput()
	f.slots.seed(models.TimeSlotAvailability{
		Date: in.Date, TimeSlot: in.TimeSlot, TotalCapacity: 1, BookedCount: 0,
	})

	type outcome struct {
		booking *models.Booking
		err     error
	}
	results := make(chan outcome, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, err := f.engine.CreateBooking(context.Background(), in)
			results <- outcome{b, err}
		}()
	}
	wg.Wait()
	close(results)

	var successes, refusals int
	for r := range results {
		if r.err == nil {
			successes++
			continue
		}
		var be *BookingError
		require.ErrorAs(t, r.err, &be)
		assert.Equal(t, CodeSlotUnavailable, be.Code)
		refusals++
	}

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, refusals)
	assert.Equal(t, 1, f.slots.bookedCount(in.Date, in.TimeSlot))
}

// ---- assignment ----

func createPending(t *testing.T, f *engineFixture) *models.Booking {
	t.Helper()
	b, err := f.engine.CreateBooking(context.Background(), validInput())
	require.NoError(t, err)
	return b
}

func assignmentInput(bookingID, cleanerID string) models.AssignmentInput {
	start := time.Now().AddDate(0, 0, 7)
	return models.AssignmentInput{
		BookingID: bookingID,
		CleanerID: cleanerID,
		StartTime: start,
		EndTime:   start.Add(2 * time.Hour),
		Notes:     "gate code 4711",
	}
}

func TestAssignCleaner(t *testing.T) {
	ctx := context.Background()

	t.Run("confirms the booking and writes the calendar", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)

		res, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-cal"))
		require.NoError(t, err)
		assert.Equal(t, "gcal-evt-1", res.CalendarEventID)
		assert.False(t, res.FallbackEventID)
		assert.Equal(t, 1, f.notifier.assigned)

		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
		assert.Equal(t, "cl-cal", stored.CleanerID)
		assert.Equal(t, "gate code 4711", stored.AssignmentNotes)
	})

	t.Run("calendar write failure falls back to a local id", func(t *testing.T) {
		f := newFixture()
		f.calendar.createErr = errors.New("api down")
		b := createPending(t, f)

		res, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-cal"))
		require.NoError(t, err)
		assert.True(t, res.FallbackEventID)
		assert.True(t, strings.HasPrefix(res.CalendarEventID, "local-"))

		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
	})

	t.Run("busy calendar refuses the assignment", func(t *testing.T) {
		f := newFixture()
		f.calendar.events = []calendar.Event{{ID: "existing"}}
		b := createPending(t, f)

		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-cal"))
		require.Error(t, err)
		assert.Equal(t, CodeCleanerUnavailable, codeOf(t, err))

		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, models.BookingStatusPending, stored.Status)
	})

	t.Run("non-integrated cleaner skips the conflict check", func(t *testing.T) {
		f := newFixture()
		f.calendar.events = []calendar.Event{{ID: "existing"}}
		b := createPending(t, f)

		res, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)
		// No calendar ref, so the event id is local.
		assert.True(t, res.FallbackEventID)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.AssignCleaner(ctx, assignmentInput("nope", "cl-1"))
		require.Error(t, err)
		assert.Equal(t, CodeBookingNotFound, codeOf(t, err))
	})

	t.Run("unknown cleaner", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "nope"))
		require.Error(t, err)
		assert.Equal(t, CodeCleanerNotFound, codeOf(t, err))
	})

	t.Run("confirmed bookings can be reassigned", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)

		res, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-cal"))
		require.NoError(t, err)
		assert.Equal(t, "cl-cal", res.CleanerID)

		stored, _ := f.bookings.GetByID(ctx, b.ID)
		assert.Equal(t, models.BookingStatusConfirmed, stored.Status)
		assert.Equal(t, "cl-cal", stored.CleanerID)
	})

	t.Run("in-progress bookings cannot be reassigned", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)
		_, err = f.engine.ClockIn(ctx, b.ID)
		require.NoError(t, err)

		_, err = f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.Error(t, err)
		assert.Equal(t, CodeInvalidStateTransition, codeOf(t, err))
	})
}

// ---- status transitions ----

func TestClockInClockOut(t *testing.T) {
	ctx := context.Background()

	t.Run("full lifecycle", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)

		started, err := f.engine.ClockIn(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusInProgress, started.Status)
		require.NotNil(t, started.ClockInAt)

		done, err := f.engine.ClockOut(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCompleted, done.Status)
		require.NotNil(t, done.ClockOutAt)

		assert.Equal(t, 1, f.cleaners.jobIncs["cl-1"])
		assert.Equal(t, 1, f.notifier.completed)
	})

	t.Run("cannot clock in a pending booking", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)

		_, err := f.engine.ClockIn(ctx, b.ID)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidStateTransition, codeOf(t, err))
		assert.Contains(t, err.Error(), "pending")
	})

	t.Run("cannot clock out before clocking in", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)

		_, err = f.engine.ClockOut(ctx, b.ID)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidStateTransition, codeOf(t, err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture()
		_, err := f.engine.ClockIn(ctx, "nope")
		assert.Equal(t, CodeBookingNotFound, codeOf(t, err))
		_, err = f.engine.ClockOut(ctx, "nope")
		assert.Equal(t, CodeBookingNotFound, codeOf(t, err))
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("pending booking releases its slot unit", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)
		require.Equal(t, 1, f.slots.bookedCount(in.Date, in.TimeSlot))

		cancelled, err := f.engine.CancelBooking(ctx, b.ID)
		require.NoError(t, err)
		assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
		require.NotNil(t, cancelled.CancelledAt)
		assert.Zero(t, f.slots.bookedCount(in.Date, in.TimeSlot))
	})

	t.Run("double cancel releases only once", func(t *testing.T) {
		f := newFixture()
		in := validInput()
		b, err := f.engine.CreateBooking(ctx, in)
		require.NoError(t, err)

		_, err = f.engine.CancelBooking(ctx, b.ID)
		require.NoError(t, err)
		_, err = f.engine.CancelBooking(ctx, b.ID)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidStateTransition, codeOf(t, err))
		assert.Zero(t, f.slots.bookedCount(in.Date, in.TimeSlot))
	})

	t.Run("completed bookings cannot be cancelled", func(t *testing.T) {
		f := newFixture()
		b := createPending(t, f)
		_, err := f.engine.AssignCleaner(ctx, assignmentInput(b.ID, "cl-1"))
		require.NoError(t, err)
		_, err = f.engine.ClockIn(ctx, b.ID)
		require.NoError(t, err)
		_, err = f.engine.ClockOut(ctx, b.ID)
		require.NoError(t, err)

		_, err = f.engine.CancelBooking(ctx, b.ID)
		require.Error(t, err)
		assert.Equal(t, CodeInvalidStateTransition, codeOf(t, err))
	})
}
