package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dzoc98/barbersite/internal/models"
)

type UpdateClientDetailInput struct {
	CoffeePreference *string
	LastHaircut      *string
	Notes            *string
}

type ClientDetailRepository struct {
	db DBTX
}

func NewClientDetailRepository(db DBTX) *ClientDetailRepository {
	return &ClientDetailRepository{db: db}
}

func (r *ClientDetailRepository) CreateEmpty(ctx context.Context, userID int64) error {
	query := `INSERT INTO client_details (user_id) VALUES ($1)`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *ClientDetailRepository) GetByUserID(ctx context.Context, userID int64) (*models.ClientDetail, error) {
	query := `
		SELECT id, user_id, coffee_preference, last_haircut, appointment_count, notes
		FROM client_details
		WHERE user_id = $1
	`
	var detail models.ClientDetail
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.CoffeePreference,
		&detail.LastHaircut,
		&detail.AppointmentCount,
		&detail.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *ClientDetailRepository) Update(
	ctx context.Context,
	userID int64,
	input UpdateClientDetailInput,
) (*models.ClientDetail, error) {
	setParts := make([]string, 0, 3)
	args := []any{userID}

	if input.CoffeePreference != nil {
		args = append(args, *input.CoffeePreference)
		setParts = append(setParts, fmt.Sprintf("coffee_preference = $%d", len(args)))
	}
	if input.LastHaircut != nil {
		args = append(args, *input.LastHaircut)
		setParts = append(setParts, fmt.Sprintf("last_haircut = $%d", len(args)))
	}
	if input.Notes != nil {
		args = append(args, *input.Notes)
		setParts = append(setParts, fmt.Sprintf("notes = $%d", len(args)))
	}
	if len(setParts) == 0 {
		return r.GetByUserID(ctx, userID)
	}

	query := fmt.Sprintf(`
		UPDATE client_details
		SET %s
		WHERE user_id = $1
		RETURNING id, user_id, coffee_preference, last_haircut, appointment_count, notes
	`, strings.Join(setParts, ", "))

	var detail models.ClientDetail
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&detail.ID,
		&detail.UserID,
		&detail.CoffeePreference,
		&detail.LastHaircut,
		&detail.AppointmentCount,
		&detail.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// AdjustAppointmentCount bumps the client's booking counter, clamping
// at zero on the way down.
func (r *ClientDetailRepository) AdjustAppointmentCount(
	ctx context.Context,
	userID int64,
	delta int,
) error {
	query := `
		UPDATE client_details
		SET appointment_count = GREATEST(appointment_count + $2, 0)
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, delta)
	return err
}

// RecordHaircut stores the service name a client last booked.
func (r *ClientDetailRepository) RecordHaircut(ctx context.Context, userID int64, serviceName string) error {
	query := `
		UPDATE client_details
		SET last_haircut = $2
		WHERE user_id = $1
	`
	_, err := r.db.Exec(ctx, query, userID, serviceName)
	return err
}
