package repository

import (
	"context"

	"github.com/Dzoc98/barbersite/internal/models"
)

type ServiceRepository struct {
	db DBTX
}

func NewServiceRepository(db DBTX) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) List(ctx context.Context) ([]models.Service, error) {
	query := `
		SELECT id, name, description, duration_min, price_cents
		FROM services
		ORDER BY id ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.Description,
			&service.DurationMinutes,
			&service.PriceCents,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*models.Service, error) {
	query := `
		SELECT id, name, description, duration_min, price_cents
		FROM services
		WHERE id = $1
	`
	var service models.Service
	err := r.db.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.PriceCents,
	)
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepository) Create(ctx context.Context, service *models.Service) error {
	query := `
		INSERT INTO services (name, description, duration_min, price_cents)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRow(
		ctx,
		query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.PriceCents,
	).Scan(&service.ID)
}
