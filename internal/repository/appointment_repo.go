package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dzoc98/barbersite/internal/models"
)

type CreateAppointmentInput struct {
	UserID    int64
	ServiceID int64
	StartsAt  time.Time
}

type UpdateAppointmentInput struct {
	Status           *string
	NotificationSent *bool
}

type AppointmentListFilter struct {
	UserID int64
	Date   *time.Time
}

// DayBooking is an appointment joined with its service duration, the
// shape the availability and conflict computations consume.
type DayBooking struct {
	AppointmentID   int64
	StartsAt        time.Time
	DurationMinutes int
}

const appointmentColumns = "id, user_id, service_id, starts_at, status, notification_sent, created_at"

type AppointmentRepository struct {
	db DBTX
}

func NewAppointmentRepository(db DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

func (r *AppointmentRepository) scanRow(row pgx.Row) (*models.Appointment, error) {
	var appt models.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.ServiceID,
		&appt.StartsAt,
		&appt.Status,
		&appt.NotificationSent,
		&appt.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *AppointmentRepository) Create(
	ctx context.Context,
	input CreateAppointmentInput,
) (*models.Appointment, error) {
	query := fmt.Sprintf(`
		INSERT INTO appointments (user_id, service_id, starts_at, status)
		VALUES ($1, $2, $3, 'pending')
		RETURNING %s
	`, appointmentColumns)

	return r.scanRow(r.db.QueryRow(ctx, query, input.UserID, input.ServiceID, input.StartsAt))
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments
		WHERE id = $1
	`, appointmentColumns)

	return r.scanRow(r.db.QueryRow(ctx, query, id))
}

func (r *AppointmentRepository) List(
	ctx context.Context,
	filter AppointmentListFilter,
) ([]models.Appointment, error) {
	args := []any{}
	whereParts := []string{}

	if filter.UserID > 0 {
		args = append(args, filter.UserID)
		whereParts = append(whereParts, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		whereParts = append(whereParts, fmt.Sprintf("starts_at::date = $%d::date", len(args)))
	}

	where := ""
	if len(whereParts) > 0 {
		where = "WHERE " + strings.Join(whereParts, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM appointments
		%s
		ORDER BY starts_at ASC, id ASC
	`, appointmentColumns, where)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0)
	for rows.Next() {
		appt, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *appt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appointments, nil
}

// ListDayBookings returns the non-cancelled appointments of the given
// calendar day together with their service durations, ordered by start.
func (r *AppointmentRepository) ListDayBookings(
	ctx context.Context,
	day time.Time,
) ([]DayBooking, error) {
	query := `
		SELECT a.id, a.starts_at, s.duration_min
		FROM appointments a
		JOIN services s ON s.id = a.service_id
		WHERE a.starts_at::date = $1::date
		  AND a.status <> 'cancelled'
		ORDER BY a.starts_at ASC, a.id ASC
	`
	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]DayBooking, 0)
	for rows.Next() {
		var booking DayBooking
		if err := rows.Scan(&booking.AppointmentID, &booking.StartsAt, &booking.DurationMinutes); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *AppointmentRepository) Update(
	ctx context.Context,
	id int64,
	input UpdateAppointmentInput,
) (*models.Appointment, error) {
	setParts := make([]string, 0, 2)
	args := []any{id}

	if input.Status != nil {
		args = append(args, *input.Status)
		setParts = append(setParts, fmt.Sprintf("status = $%d", len(args)))
	}
	if input.NotificationSent != nil {
		args = append(args, *input.NotificationSent)
		setParts = append(setParts, fmt.Sprintf("notification_sent = $%d", len(args)))
	}
	if len(setParts) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE appointments
		SET %s
		WHERE id = $1
		RETURNING %s
	`, strings.Join(setParts, ", "), appointmentColumns)

	return r.scanRow(r.db.QueryRow(ctx, query, args...))
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// HasConflict reports whether any non-cancelled appointment overlaps
// [startsAt, startsAt+durationMinutes) under half-open semantics.
func (r *AppointmentRepository) HasConflict(
	ctx context.Context,
	startsAt time.Time,
	durationMinutes int,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM appointments a
			JOIN services s ON s.id = a.service_id
			WHERE a.status <> 'cancelled'
			  AND a.starts_at < ($1::timestamp + ($2::int * INTERVAL '1 minute'))
			  AND (a.starts_at + (s.duration_min * INTERVAL '1 minute')) > $1::timestamp
		)
	`
	var hasConflict bool
	if err := r.db.QueryRow(ctx, query, startsAt, durationMinutes).Scan(&hasConflict); err != nil {
		return false, err
	}
	return hasConflict, nil
}
