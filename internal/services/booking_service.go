package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Dzoc98/barbersite/internal/models"
	"github.com/Dzoc98/barbersite/internal/repository"
	"github.com/Dzoc98/barbersite/internal/scheduling"
)

var (
	ErrConflict               = errors.New("time slot is already booked")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrOutsideBusinessHours   = errors.New("appointment must be between 9:00 and 19:30")
	ErrOffSlotGrid            = errors.New("appointment must be scheduled at 10-minute intervals")
	ErrRunsPastClosing        = errors.New("service would not finish before closing time")
	ErrUserNotFound           = errors.New("user not found")
	ErrServiceNotFound        = errors.New("service not found")
)

type serviceReader interface {
	GetByID(ctx context.Context, id int64) (*models.Service, error)
}

type userReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type BookingService struct {
	db              *pgxpool.Pool
	appointmentRepo *repository.AppointmentRepository
	serviceRepo     serviceReader
	userRepo        userReader
	now             func() time.Time
}

func NewBookingService(
	db *pgxpool.Pool,
	appointmentRepo *repository.AppointmentRepository,
	serviceRepo serviceReader,
	userRepo userReader,
) *BookingService {
	return &BookingService{
		db:              db,
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		userRepo:        userRepo,
		now:             time.Now,
	}
}

type BookAppointmentInput struct {
	UserID    int64
	ServiceID int64
	StartsAt  time.Time
}

type UpdateAppointmentInput struct {
	Status           *string
	NotificationSent *bool
}

// AvailableSlots returns the bookable start times of the given day for
// a service, ascending. An empty slice means the day is fully booked.
func (s *BookingService) AvailableSlots(
	ctx context.Context,
	day time.Time,
	serviceID int64,
) ([]time.Time, error) {
	service, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	bookings, err := s.appointmentRepo.ListDayBookings(ctx, day)
	if err != nil {
		return nil, err
	}
	busy := make([]scheduling.Interval, 0, len(bookings))
	for _, booking := range bookings {
		busy = append(busy, scheduling.NewInterval(booking.StartsAt, booking.DurationMinutes))
	}

	return scheduling.AvailableSlots(day, service.DurationMinutes, busy, s.now()), nil
}

func (s *BookingService) Book(
	ctx context.Context,
	input BookAppointmentInput,
) (*models.Appointment, error) {
	if input.UserID <= 0 || input.ServiceID <= 0 {
		return nil, ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	service, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	if err := validateBookingTime(input.StartsAt, service.DurationMinutes); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txAppointmentRepo := repository.NewAppointmentRepository(tx)
	txClientDetailRepo := repository.NewClientDetailRepository(tx)

	// Serialize bookings per calendar day so the conflict check and the
	// insert happen atomically with respect to other booking requests.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", bookingDayKey(input.StartsAt)); err != nil {
		return nil, err
	}

	hasConflict, err := txAppointmentRepo.HasConflict(ctx, input.StartsAt, service.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if hasConflict {
		return nil, ErrConflict
	}

	appointment, err := txAppointmentRepo.Create(ctx, repository.CreateAppointmentInput{
		UserID:    input.UserID,
		ServiceID: input.ServiceID,
		StartsAt:  input.StartsAt,
	})
	if err != nil {
		return nil, err
	}

	if err := txClientDetailRepo.RecordHaircut(ctx, user.ID, service.Name); err != nil {
		return nil, err
	}
	if err := txClientDetailRepo.AdjustAppointmentCount(ctx, user.ID, 1); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return appointment, nil
}

func (s *BookingService) ListAppointments(
	ctx context.Context,
	filter repository.AppointmentListFilter,
) ([]models.Appointment, error) {
	return s.appointmentRepo.List(ctx, filter)
}

func (s *BookingService) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.appointmentRepo.GetByID(ctx, id)
}

func (s *BookingService) UpdateAppointment(
	ctx context.Context,
	id int64,
	input UpdateAppointmentInput,
) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := repository.UpdateAppointmentInput{
		NotificationSent: input.NotificationSent,
	}
	if input.Status != nil {
		nextStatus, err := normalizeRequestedStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		if err := validateStatusTransition(appointment, nextStatus, s.now()); err != nil {
			return nil, err
		}
		update.Status = &nextStatus
		if nextStatus == models.AppointmentStatusCompleted {
			// Completion marks the client as notified; actual delivery
			// is out of scope.
			sent := true
			update.NotificationSent = &sent
		}
	}

	return s.appointmentRepo.Update(ctx, id, update)
}

// CancelAppointment removes the appointment entirely; deleted rows no
// longer take part in conflict or availability computations.
func (s *BookingService) CancelAppointment(ctx context.Context, id int64) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txAppointmentRepo := repository.NewAppointmentRepository(tx)
	txClientDetailRepo := repository.NewClientDetailRepository(tx)

	appointment, err := txAppointmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := txAppointmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := txClientDetailRepo.AdjustAppointmentCount(ctx, appointment.UserID, -1); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// bookingDayKey maps a start time to the advisory-lock key for its
// calendar day.
func bookingDayKey(t time.Time) int64 {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Unix() / 86400
}

func validateBookingTime(startsAt time.Time, durationMinutes int) error {
	if !scheduling.WithinBusinessHours(startsAt) {
		return ErrOutsideBusinessHours
	}
	if !scheduling.OnGrid(startsAt) {
		return ErrOffSlotGrid
	}
	if !scheduling.EndsByClosing(startsAt, durationMinutes) {
		return ErrRunsPastClosing
	}
	return nil
}

func normalizeRequestedStatus(status string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "pending":
		return models.AppointmentStatusPending, nil
	case "complete", "completed":
		return models.AppointmentStatusCompleted, nil
	case "cancel", "cancelled", "canceled":
		return models.AppointmentStatusCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

func validateStatusTransition(appointment *models.Appointment, nextStatus string, now time.Time) error {
	if nextStatus == appointment.Status {
		return nil
	}
	if appointment.Status != models.AppointmentStatusPending {
		// completed and cancelled are terminal
		return ErrInvalidStateTransition
	}
	switch nextStatus {
	case models.AppointmentStatusCompleted:
		if appointment.StartsAt.After(now) {
			return ErrInvalidStateTransition
		}
	case models.AppointmentStatusCancelled:
	default:
		return ErrInvalidStateTransition
	}
	return nil
}
