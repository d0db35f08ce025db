package repositories

import (
	"context"
	"strconv"
	"sync"
	"time"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
)

// MemoryStore keeps records in process memory, in insertion order. It backs
// STORE_DRIVER=memory for local runs and the handler tests.
type MemoryStore struct {
	mu      sync.RWMutex
	seq     int64
	buses   []models.Bus
	drivers []models.Driver
	trips   []models.Trip
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Driver() string { return "memory" }

func (m *MemoryStore) nextID() string {
	m.seq++
	return strconv.FormatInt(m.seq, 10)
}

func (m *MemoryStore) CreateBus(_ context.Context, b models.Bus) (models.Bus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.ID = m.nextID()
	b.CreatedAt = time.Now().UTC()
	m.buses = append(m.buses, b)
	return b, nil
}

func (m *MemoryStore) CreateDriver(_ context.Context, d models.Driver) (models.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = m.nextID()
	d.CreatedAt = time.Now().UTC()
	m.drivers = append(m.drivers, d)
	return d, nil
}

func (m *MemoryStore) CreateTrip(_ context.Context, t models.Trip) (models.Trip, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.nextID()
	t.CreatedAt = time.Now().UTC()
	m.trips = append(m.trips, t)
	return t, nil
}

func (m *MemoryStore) FindBus(_ context.Context, busID string) (models.Bus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.buses {
		if b.BusID == busID {
			return b, nil
		}
	}
	return models.Bus{}, notFound(domain.KindBus, busID, nil)
}

func (m *MemoryStore) FindDriver(_ context.Context, name string) (models.Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.drivers {
		if d.DriverName == name {
			return d, nil
		}
	}
	return models.Driver{}, notFound(domain.KindDriver, name, nil)
}

func (m *MemoryStore) FindTrips(_ context.Context, f TripFilter) ([]models.Trip, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []models.Trip{}
	for _, t := range m.trips {
		if t.To != f.To {
			continue
		}
		if f.strict() && t.Fro != f.Fro {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

// Counts reports how many records of each kind are held.
func (m *MemoryStore) Counts() (buses, drivers, trips int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.buses), len(m.drivers), len(m.trips)
}

func (m *MemoryStore) Ping(context.Context) error  { return nil }
func (m *MemoryStore) Close(context.Context) error { return nil }
