package repositories

import (
	"context"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
)

// RecordStore persists the three record kinds. Each Create writes exactly one
// document; there is no update or delete. Implementations wrap store failures
// in domain.InternalError and report empty single lookups as
// domain.NotFoundError.
type RecordStore interface {
	CreateBus(ctx context.Context, b models.Bus) (models.Bus, error)
	CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error)
	CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error)

	FindBus(ctx context.Context, busID string) (models.Bus, error)
	FindDriver(ctx context.Context, name string) (models.Driver, error)
	FindTrips(ctx context.Context, f TripFilter) ([]models.Trip, error)

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
	Driver() string
}

// TripFilter selects trips by route endpoints. Under domain.MatchLegacy only
// To is applied.
type TripFilter struct {
	To   string
	Fro  string
	Mode domain.MatchMode
}

func (f TripFilter) strict() bool {
	return f.Mode == domain.MatchStrict
}

func notFound(kind domain.Kind, key string, err error) error {
	return domain.NotFoundError{Resource: string(kind), Key: key, Err: err}
}

func storeFailure(op string, err error) error {
	return domain.InternalError{Op: op, Err: err}
}
