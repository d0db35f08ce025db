package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	intdb "busdepot/internal/db"
	"busdepot/internal/domain"
	"busdepot/internal/domain/models"
)

var sqlSchema = []struct {
	table string
	key   string
	ddl   string
}{
	{"buses", "bus_id", `
		CREATE TABLE IF NOT EXISTS buses (
			id          BIGINT AUTO_INCREMENT PRIMARY KEY,
			bus_id      VARCHAR(64)  NOT NULL DEFAULT '',
			depo        VARCHAR(128) NOT NULL DEFAULT '',
			no_of_seats INT          NOT NULL DEFAULT 0,
			driver_name VARCHAR(128) NOT NULL DEFAULT '',
			owner_name  VARCHAR(128) NOT NULL DEFAULT '',
			created_at  DATETIME     NOT NULL
		)`},
	{"drivers", "driver_name", `
		CREATE TABLE IF NOT EXISTS drivers (
			id          BIGINT AUTO_INCREMENT PRIMARY KEY,
			driver_name VARCHAR(128) NOT NULL DEFAULT '',
			license_no  BIGINT       NOT NULL DEFAULT 0,
			phone       BIGINT       NOT NULL DEFAULT 0,
			age         INT          NOT NULL DEFAULT 0,
			experience  INT          NOT NULL DEFAULT 0,
			created_at  DATETIME     NOT NULL
		)`},
	{"trips", "route_to", `
		CREATE TABLE IF NOT EXISTS trips (
			id          BIGINT AUTO_INCREMENT PRIMARY KEY,
			trip_no     INT          NOT NULL DEFAULT 0,
			trip_date   VARCHAR(64)  NOT NULL DEFAULT '',
			bus_no      INT          NOT NULL DEFAULT 0,
			route_to    VARCHAR(128) NOT NULL DEFAULT '',
			route_fro   VARCHAR(128) NOT NULL DEFAULT '',
			no_of_seats INT          NOT NULL DEFAULT 0,
			created_at  DATETIME     NOT NULL
		)`},
}

// SQLStore is the MySQL-backed RecordStore. One table per record kind, no
// foreign keys between them.
type SQLStore struct {
	DB  *sql.DB
	now func() time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{DB: db, now: time.Now}
}

func (s *SQLStore) Driver() string { return "mysql" }

// EnsureSchema creates any missing record table and checks that existing
// ones carry their lookup column. Once it succeeds it is not run again; until
// then every store call retries it, so a server that comes up after the app
// still gets its tables.
func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()
	if s.schemaReady {
		return nil
	}

	for _, t := range sqlSchema {
		if intdb.HasTable(ctx, s.DB, t.table) {
			if !intdb.HasColumn(ctx, s.DB, t.table, t.key) {
				return fmt.Errorf("table %s has no %s column", t.table, t.key)
			}
			continue
		}
		if _, err := s.DB.ExecContext(ctx, t.ddl); err != nil {
			return fmt.Errorf("create table %s: %w", t.table, err)
		}
	}
	s.schemaReady = true
	return nil
}

func (s *SQLStore) ready(ctx context.Context) error {
	if err := s.EnsureSchema(ctx); err != nil {
		return storeFailure("ensure schema", err)
	}
	return nil
}

func (s *SQLStore) CreateBus(ctx context.Context, b models.Bus) (models.Bus, error) {
	if err := s.ready(ctx); err != nil {
		return models.Bus{}, err
	}
	b.CreatedAt = s.now().UTC()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO buses (bus_id, depo, no_of_seats, driver_name, owner_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, b.BusID, b.Depo, b.NoOfSeats, b.DriverName, b.OwnerName, b.CreatedAt)
	if err != nil {
		return models.Bus{}, storeFailure("insert bus", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Bus{}, storeFailure("insert bus id", err)
	}
	b.ID = strconv.FormatInt(id, 10)
	return b, nil
}

func (s *SQLStore) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	if err := s.ready(ctx); err != nil {
		return models.Driver{}, err
	}
	d.CreatedAt = s.now().UTC()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO drivers (driver_name, license_no, phone, age, experience, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, d.DriverName, d.LicenseNo, d.Phone, d.Age, d.Experience, d.CreatedAt)
	if err != nil {
		return models.Driver{}, storeFailure("insert driver", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Driver{}, storeFailure("insert driver id", err)
	}
	d.ID = strconv.FormatInt(id, 10)
	return d, nil
}

func (s *SQLStore) CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	if err := s.ready(ctx); err != nil {
		return models.Trip{}, err
	}
	t.CreatedAt = s.now().UTC()
	res, err := s.DB.ExecContext(ctx, `
		INSERT INTO trips (trip_no, trip_date, bus_no, route_to, route_fro, no_of_seats, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, t.TripNo, t.Date, t.BusNo, t.To, t.Fro, t.NoOfSeats, t.CreatedAt)
	if err != nil {
		return models.Trip{}, storeFailure("insert trip", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Trip{}, storeFailure("insert trip id", err)
	}
	t.ID = strconv.FormatInt(id, 10)
	return t, nil
}

func (s *SQLStore) FindBus(ctx context.Context, busID string) (models.Bus, error) {
	if err := s.ready(ctx); err != nil {
		return models.Bus{}, err
	}
	var (
		b  models.Bus
		id int64
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, bus_id, depo, no_of_seats, driver_name, owner_name, created_at
		FROM buses
		WHERE bus_id = ?
		ORDER BY id ASC
		LIMIT 1
	`, busID).Scan(&id, &b.BusID, &b.Depo, &b.NoOfSeats, &b.DriverName, &b.OwnerName, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bus{}, notFound(domain.KindBus, busID, err)
	}
	if err != nil {
		return models.Bus{}, storeFailure("find bus", err)
	}
	b.ID = strconv.FormatInt(id, 10)
	return b, nil
}

func (s *SQLStore) FindDriver(ctx context.Context, name string) (models.Driver, error) {
	if err := s.ready(ctx); err != nil {
		return models.Driver{}, err
	}
	var (
		d  models.Driver
		id int64
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, driver_name, license_no, phone, age, experience, created_at
		FROM drivers
		WHERE driver_name = ?
		ORDER BY id ASC
		LIMIT 1
	`, name).Scan(&id, &d.DriverName, &d.LicenseNo, &d.Phone, &d.Age, &d.Experience, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Driver{}, notFound(domain.KindDriver, name, err)
	}
	if err != nil {
		return models.Driver{}, storeFailure("find driver", err)
	}
	d.ID = strconv.FormatInt(id, 10)
	return d, nil
}

func (s *SQLStore) FindTrips(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	query := `
		SELECT id, trip_no, trip_date, bus_no, route_to, route_fro, no_of_seats, created_at
		FROM trips
		WHERE route_to = ?`
	args := []any{f.To}
	if f.strict() {
		query += ` AND route_fro = ?`
		args = append(args, f.Fro)
	}
	query += ` ORDER BY id ASC`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeFailure("find trips", err)
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		var (
			t  models.Trip
			id int64
		)
		if err := rows.Scan(&id, &t.TripNo, &t.Date, &t.BusNo, &t.To, &t.Fro, &t.NoOfSeats, &t.CreatedAt); err != nil {
			return nil, storeFailure("scan trip", err)
		}
		t.ID = strconv.FormatInt(id, 10)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeFailure("read trips", err)
	}
	return out, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLStore) Close(context.Context) error {
	return s.DB.Close()
}
