package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel"

	"housing-service/config"
	"housing-service/domain"
)

// fakePropertyStore mirrors the atomic reserve/release guarantees of the
// mongo implementation with a mutex.
type fakePropertyStore struct {
	mu         sync.Mutex
	properties map[primitive.ObjectID]*domain.Property
}

func newFakePropertyStore(properties ...*domain.Property) *fakePropertyStore {
	store := &fakePropertyStore{properties: make(map[primitive.ObjectID]*domain.Property)}
	for _, p := range properties {
		store.properties[p.ID] = p
	}
	return store
}

func (f *fakePropertyStore) Insert(_ context.Context, property *domain.Property) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	f.properties[property.ID] = property
	return property, nil
}

func (f *fakePropertyStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Property, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	property, ok := f.properties[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound()
	}
	return property, nil
}

func (f *fakePropertyStore) Update(_ context.Context, property *domain.Property) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.properties[property.ID]; !ok {
		return domain.ErrPropertyNotFound()
	}
	f.properties[property.ID] = property
	return nil
}

func (f *fakePropertyStore) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.properties, id)
	return nil
}

func (f *fakePropertyStore) Search(_ context.Context, _ domain.ListingFilter) (domain.Properties, error) {
	return nil, nil
}

func (f *fakePropertyStore) GetByLandlord(_ context.Context, _ primitive.ObjectID) (domain.Properties, error) {
	return nil, nil
}

func (f *fakePropertyStore) ReserveBeds(_ context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	property, ok := f.properties[propertyID]
	if !ok {
		return domain.ErrPropertyNotFound()
	}
	rt, ok := property.RoomTypeByKind(roomType)
	if !ok {
		return domain.ErrRoomTypeNotFound()
	}
	if rt.Occupied+count > rt.Capacity {
		return domain.ErrCapacityExceeded()
	}
	rt.Occupied += count
	property.CurrentOccupancy += count
	return nil
}

func (f *fakePropertyStore) ReleaseBeds(_ context.Context, propertyID primitive.ObjectID, roomType domain.RoomTypeKind, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	property, ok := f.properties[propertyID]
	if !ok {
		return domain.ErrPropertyNotFound()
	}
	rt, ok := property.RoomTypeByKind(roomType)
	if !ok {
		return domain.ErrRoomTypeNotFound()
	}
	if rt.Occupied < count {
		return domain.ErrInvalidRelease()
	}
	rt.Occupied -= count
	property.CurrentOccupancy -= count
	return nil
}

func (f *fakePropertyStore) IncrementViews(_ context.Context, _ primitive.ObjectID) error { return nil }

func (f *fakePropertyStore) IncrementInquiries(_ context.Context, _ primitive.ObjectID) error {
	return nil
}

func (f *fakePropertyStore) IncrementBookings(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if property, ok := f.properties[id]; ok {
		property.Bookings++
	}
	return nil
}

func (f *fakePropertyStore) UpdateRatingStats(_ context.Context, id primitive.ObjectID, average float64, total int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if property, ok := f.properties[id]; ok {
		property.AverageRating = average
		property.TotalReviews = total
	}
	return nil
}

// fakeBookingStore keeps bookings in a map and honors the same
// compare-and-swap contract as the mongo UpdateStatus.
type fakeBookingStore struct {
	mu       sync.Mutex
	bookings map[primitive.ObjectID]*domain.Booking

	failStatusUpdate bool
}

func newFakeBookingStore(bookings ...*domain.Booking) *fakeBookingStore {
	store := &fakeBookingStore{bookings: make(map[primitive.ObjectID]*domain.Booking)}
	for _, b := range bookings {
		store.bookings[b.ID] = b
	}
	return store
}

func (f *fakeBookingStore) Insert(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingStore) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound()
	}
	copied := *booking
	return &copied, nil
}

func (f *fakeBookingStore) Update(_ context.Context, booking *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[booking.ID]; !ok {
		return domain.ErrBookingNotFound()
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) UpdateStatus(_ context.Context, booking *domain.Booking, from domain.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStatusUpdate {
		return domain.ErrInvalidTransition()
	}
	stored, ok := f.bookings[booking.ID]
	if !ok {
		return domain.ErrBookingNotFound()
	}
	if stored.Status != from {
		return domain.ErrInvalidTransition()
	}
	copied := *booking
	f.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingStore) GetByStudent(_ context.Context, studentID primitive.ObjectID) (domain.Bookings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out domain.Bookings
	for _, b := range f.bookings {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetByLandlord(_ context.Context, landlordID primitive.ObjectID) (domain.Bookings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out domain.Bookings
	for _, b := range f.bookings {
		if b.LandlordID == landlordID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) GetByProperty(_ context.Context, propertyID primitive.ObjectID) (domain.Bookings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out domain.Bookings
	for _, b := range f.bookings {
		if b.PropertyID == propertyID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	requested int
	changed   int
}

func (f *fakeNotifier) BookingRequested(_ *domain.Booking, _ *domain.Property) {
	f.mu.Lock()
	f.requested++
	f.mu.Unlock()
}

func (f *fakeNotifier) BookingStatusChanged(_ *domain.Booking, _ *domain.Property) {
	f.mu.Lock()
	f.changed++
	f.mu.Unlock()
}

func (f *fakeNotifier) PasswordReset(_ *domain.User, _ string) {}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newBookingServiceForTest(bookings *fakeBookingStore, properties *fakePropertyStore, policy config.CompletionPolicy) (BookingService, *fakeNotifier) {
	notifier := &fakeNotifier{}
	service := NewBookingServiceImpl(bookings, properties, notifier, policy, quietLogger(), otel.Tracer("test"))
	return service, notifier
}

func testProperty(capacity int, occupied int) *domain.Property {
	return &domain.Property{
		ID:         primitive.NewObjectID(),
		LandlordID: primitive.NewObjectID(),
		RoomTypes: []domain.RoomType{
			{Type: domain.RoomSingle, Capacity: capacity, Occupied: occupied, PricePerBed: 6000},
		},
		TotalCapacity:    capacity,
		CurrentOccupancy: occupied,
		IsAvailable:      true,
	}
}

func testBooking(property *domain.Property, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:                primitive.NewObjectID(),
		PropertyID:        property.ID,
		StudentID:         primitive.NewObjectID(),
		LandlordID:        property.LandlordID,
		RoomType:          domain.RoomSingle,
		CheckInDate:       time.Now().AddDate(0, 1, 0),
		Duration:          6,
		MonthlyRent:       6000,
		TotalAmount:       36000,
		Status:            status,
		StudentName:       "Asha Verma",
		StudentEmail:      "asha@example.com",
		StudentPhone:      "9876543210",
		NumberOfOccupants: 1,
	}
}

func TestCreateBookingDefaults(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	bookings := newFakeBookingStore()
	service, notifier := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	request := testBooking(property, "")
	request.ID = primitive.NilObjectID
	request.NumberOfOccupants = 0
	request.MonthlyRent = 0
	request.TotalAmount = 0
	request.SecurityDeposit = 5000

	created, err := service.CreateBooking(context.Background(), request)
	if err != nil {
		t.Fatalf("create booking failed: %v", err)
	}
	if created.Status != domain.BookingPending {
		t.Errorf("new booking must start Pending, got %q", created.Status)
	}
	if created.NumberOfOccupants != 1 {
		t.Errorf("occupants should default to 1, got %d", created.NumberOfOccupants)
	}
	if created.MonthlyRent != 6000 {
		t.Errorf("rent should derive from price per bed, got %v", created.MonthlyRent)
	}
	if created.TotalAmount != 6000*6+5000 {
		t.Errorf("unexpected total amount %v", created.TotalAmount)
	}
	if property.RoomTypes[0].Occupied != 0 {
		t.Errorf("creating a request must not consume inventory")
	}
	if notifier.requested != 1 {
		t.Errorf("landlord should be notified of the request")
	}
}

func TestCreateBookingUnknownRoomType(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	bookings := newFakeBookingStore()
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	request := testBooking(property, "")
	request.ID = primitive.NilObjectID
	request.RoomType = domain.RoomDormitory

	if _, err := service.CreateBooking(context.Background(), request); !errors.Is(err, domain.ErrRoomTypeNotFound()) {
		t.Fatalf("expected room type not found, got %v", err)
	}
}

func TestConfirmBookingReservesBeds(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(booking)
	service, notifier := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	confirmed, err := service.ConfirmBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if confirmed.Status != domain.BookingConfirmed {
		t.Errorf("expected Confirmed, got %q", confirmed.Status)
	}
	if property.RoomTypes[0].Occupied != 1 {
		t.Errorf("expected 1 occupied bed, got %d", property.RoomTypes[0].Occupied)
	}
	stored, _ := bookings.GetByID(context.Background(), booking.ID)
	if stored.Status != domain.BookingConfirmed {
		t.Errorf("confirmed status not persisted, got %q", stored.Status)
	}
	if notifier.changed != 1 {
		t.Errorf("student should be notified of the decision")
	}
}

func TestConfirmBookingWhenFull(t *testing.T) {
	property := testProperty(2, 2)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	_, err := service.ConfirmBooking(context.Background(), booking.ID)
	if !errors.Is(err, domain.ErrCapacityExceeded()) {
		t.Fatalf("expected capacity exceeded, got %v", err)
	}
	stored, _ := bookings.GetByID(context.Background(), booking.ID)
	if stored.Status != domain.BookingPending {
		t.Errorf("failed confirm must leave the booking Pending, got %q", stored.Status)
	}
}

// Eight confirms race for two single beds. Exactly two may win
// and occupancy must end exactly at capacity.
func TestConcurrentConfirmsNeverOversell(t *testing.T) {
	const capacity = 2
	const contenders = 8

	property := testProperty(capacity, 0)
	properties := newFakePropertyStore(property)

	pending := make([]*domain.Booking, contenders)
	for i := range pending {
		pending[i] = testBooking(property, domain.BookingPending)
	}
	bookings := newFakeBookingStore(pending...)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	var wg sync.WaitGroup
	results := make(chan error, contenders)
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(id primitive.ObjectID) {
			defer wg.Done()
			_, err := service.ConfirmBooking(context.Background(), id)
			results <- err
		}(pending[i].ID)
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, domain.ErrCapacityExceeded()):
			losses++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}

	if wins != capacity {
		t.Errorf("expected exactly %d successful confirms, got %d", capacity, wins)
	}
	if losses != contenders-capacity {
		t.Errorf("expected %d capacity rejections, got %d", contenders-capacity, losses)
	}
	if property.RoomTypes[0].Occupied != capacity {
		t.Errorf("occupancy must equal capacity, got %d", property.RoomTypes[0].Occupied)
	}
}

func TestConfirmCompensatesWhenStatusWriteLoses(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(booking)
	bookings.failStatusUpdate = true
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	if _, err := service.ConfirmBooking(context.Background(), booking.ID); err == nil {
		t.Fatal("expected confirm to fail")
	}
	if property.RoomTypes[0].Occupied != 0 {
		t.Errorf("reserved beds must be handed back after a lost race, got %d occupied", property.RoomTypes[0].Occupied)
	}
}

func TestCancelReleasesBeds(t *testing.T) {
	property := testProperty(2, 1)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingConfirmed)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	cancelled, err := service.CancelBooking(context.Background(), booking.ID, "semester abroad")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if cancelled.Status != domain.BookingCancelled {
		t.Errorf("expected Cancelled, got %q", cancelled.Status)
	}
	if property.RoomTypes[0].Occupied != 0 {
		t.Errorf("cancel must free the bed, got %d occupied", property.RoomTypes[0].Occupied)
	}
}

func TestCancelPendingBookingFails(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	if _, err := service.CancelBooking(context.Background(), booking.ID, "changed my mind"); !errors.Is(err, domain.ErrInvalidTransition()) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestRejectWithoutReasonFails(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	if _, err := service.RejectBooking(context.Background(), booking.ID, ""); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	stored, _ := bookings.GetByID(context.Background(), booking.ID)
	if stored.Status != domain.BookingPending {
		t.Errorf("failed reject must not change stored status")
	}
}

func TestCompleteReleasesBedsUnderDefaultPolicy(t *testing.T) {
	property := testProperty(2, 1)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingConfirmed)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	completed, err := service.CompleteBooking(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if completed.Status != domain.BookingCompleted {
		t.Errorf("expected Completed, got %q", completed.Status)
	}
	if property.RoomTypes[0].Occupied != 0 {
		t.Errorf("release-on-complete should free the bed, got %d occupied", property.RoomTypes[0].Occupied)
	}
}

func TestCompleteKeepsBedsUnderNoAutoRelease(t *testing.T) {
	property := testProperty(2, 1)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingConfirmed)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.NoAutoRelease)

	if _, err := service.CompleteBooking(context.Background(), booking.ID); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if property.RoomTypes[0].Occupied != 1 {
		t.Errorf("no-auto-release must keep the bed occupied, got %d", property.RoomTypes[0].Occupied)
	}
}

// Full lifecycle on a two-bed single room: two confirms fill it, a third
// bounces, a cancellation frees a bed and the bounced request can be
// re-confirmed.
func TestSingleRoomLifecycle(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)

	first := testBooking(property, domain.BookingPending)
	second := testBooking(property, domain.BookingPending)
	third := testBooking(property, domain.BookingPending)
	bookings := newFakeBookingStore(first, second, third)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	ctx := context.Background()
	if _, err := service.ConfirmBooking(ctx, first.ID); err != nil {
		t.Fatalf("first confirm failed: %v", err)
	}
	if _, err := service.ConfirmBooking(ctx, second.ID); err != nil {
		t.Fatalf("second confirm failed: %v", err)
	}
	if _, err := service.ConfirmBooking(ctx, third.ID); !errors.Is(err, domain.ErrCapacityExceeded()) {
		t.Fatalf("third confirm on a full room should bounce, got %v", err)
	}

	if _, err := service.CancelBooking(ctx, first.ID, "found a place closer to campus"); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if _, err := service.ConfirmBooking(ctx, third.ID); err != nil {
		t.Fatalf("confirm after a bed freed up failed: %v", err)
	}

	if property.RoomTypes[0].Occupied != 2 {
		t.Errorf("expected 2 occupied beds at the end, got %d", property.RoomTypes[0].Occupied)
	}
	if property.CurrentOccupancy != property.RoomTypes[0].Occupied {
		t.Errorf("aggregate occupancy out of sync: %d vs %d", property.CurrentOccupancy, property.RoomTypes[0].Occupied)
	}
}

func TestRefundOnlyOnCancelledOrRejected(t *testing.T) {
	property := testProperty(2, 0)
	properties := newFakePropertyStore(property)
	booking := testBooking(property, domain.BookingConfirmed)
	bookings := newFakeBookingStore(booking)
	service, _ := newBookingServiceForTest(bookings, properties, config.ReleaseOnComplete)

	if _, err := service.UpdatePaymentStatus(context.Background(), booking.ID, domain.PaymentRefunded, ""); !domain.IsValidationError(err) {
		t.Fatalf("refund on a confirmed booking should be rejected, got %v", err)
	}

	cancelled := testBooking(property, domain.BookingCancelled)
	bookings.bookings[cancelled.ID] = cancelled
	updated, err := service.UpdatePaymentStatus(context.Background(), cancelled.ID, domain.PaymentRefunded, "bank transfer")
	if err != nil {
		t.Fatalf("refund on a cancelled booking failed: %v", err)
	}
	if updated.PaymentStatus != domain.PaymentRefunded {
		t.Errorf("payment status not updated, got %q", updated.PaymentStatus)
	}
	if updated.PaymentMethod != "bank transfer" {
		t.Errorf("payment method not recorded")
	}
}
