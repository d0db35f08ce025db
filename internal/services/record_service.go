package services

import (
	"context"
	"strconv"
	"time"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
	"busdepot/internal/repositories"
	"busdepot/internal/utils"
)

// RecordService registers and looks up buses, drivers and trips. It holds no
// state besides the injected store, so one value serves all requests.
type RecordService struct {
	Store     repositories.RecordStore
	MatchMode domain.MatchMode
	Timeout   time.Duration
}

func NewRecordService(store repositories.RecordStore, mode domain.MatchMode, timeout time.Duration) *RecordService {
	return &RecordService{Store: store, MatchMode: mode, Timeout: timeout}
}

func (s *RecordService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func (s *RecordService) RegisterBus(ctx context.Context, requestID string, form models.BusForm) (models.Bus, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bus, err := s.Store.CreateBus(ctx, form.ToBus())
	if err != nil {
		utils.LogError(requestID, "bus", "register", err)
		return models.Bus{}, err
	}
	utils.LogEvent(requestID, "bus", "register", "bus_id="+bus.BusID+" id="+bus.ID)
	return bus, nil
}

func (s *RecordService) RegisterDriver(ctx context.Context, requestID string, form models.DriverForm) (models.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.Store.CreateDriver(ctx, form.ToDriver())
	if err != nil {
		utils.LogError(requestID, "driver", "register", err)
		return models.Driver{}, err
	}
	utils.LogEvent(requestID, "driver", "register", "name="+driver.DriverName+" id="+driver.ID)
	return driver, nil
}

func (s *RecordService) RegisterTrip(ctx context.Context, requestID string, form models.TripForm) (models.Trip, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	trip, err := s.Store.CreateTrip(ctx, form.ToTrip())
	if err != nil {
		utils.LogError(requestID, "trip", "register", err)
		return models.Trip{}, err
	}
	utils.LogEvent(requestID, "trip", "register", "trip_no="+strconv.Itoa(trip.TripNo)+" id="+trip.ID)
	return trip, nil
}

// LookupBus returns the first bus stored under busID.
func (s *RecordService) LookupBus(ctx context.Context, requestID, busID string) (models.Bus, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	bus, err := s.Store.FindBus(ctx, busID)
	if err != nil && !domain.IsNotFound(err) {
		utils.LogError(requestID, "bus", "lookup", err)
	}
	return bus, err
}

func (s *RecordService) LookupDriver(ctx context.Context, requestID, name string) (models.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	driver, err := s.Store.FindDriver(ctx, name)
	if err != nil && !domain.IsNotFound(err) {
		utils.LogError(requestID, "driver", "lookup", err)
	}
	return driver, err
}

// LookupTrips applies the configured match mode. An empty result is reported
// as domain.NotFoundError so callers render it like the single-record kinds.
func (s *RecordService) LookupTrips(ctx context.Context, requestID, to, fro string) ([]models.Trip, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	trips, err := s.Store.FindTrips(ctx, repositories.TripFilter{To: to, Fro: fro, Mode: s.MatchMode})
	if err != nil {
		utils.LogError(requestID, "trip", "lookup", err)
		return nil, err
	}
	if len(trips) == 0 {
		return nil, domain.NotFoundError{Resource: string(domain.KindTrip), Key: to}
	}
	utils.LogEvent(requestID, "trip", "lookup", "to="+to+" mode="+string(s.MatchMode)+" matches="+strconv.Itoa(len(trips)))
	return trips, nil
}

// StoreStatus pings the store for the health endpoint.
func (s *RecordService) StoreStatus(ctx context.Context) (string, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Store.Driver(), s.Store.Ping(ctx)
}
