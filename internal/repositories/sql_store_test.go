package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

// newSQLStoreMock returns a store whose schema is already in place so tests
// only see the record queries.
func newSQLStoreMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	store, mock := newBareSQLStoreMock(t)
	store.schemaReady = true
	return store, mock
}

func newBareSQLStoreMock(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := NewSQLStore(db)
	store.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return store, mock
}

func expectSchemaCreated(mock sqlmock.Sqlmock) {
	for _, table := range []string{"buses", "drivers", "trips"} {
		mock.ExpectQuery("information_schema\\.tables").WithArgs(table).
			WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS " + table).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}
}

func TestSQLStoreEnsureSchemaCreatesMissingTables(t *testing.T) {
	store, mock := newBareSQLStoreMock(t)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("buses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("buses"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("buses", "bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("bus_id"))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("drivers").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS drivers").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("information_schema\\.tables").WithArgs("trips").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS trips").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema error: %v", err)
	}
	// second run is a no-op
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema rerun error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreEnsureSchemaRejectsTableWithoutKeyColumn(t *testing.T) {
	store, mock := newBareSQLStoreMock(t)

	mock.ExpectQuery("information_schema\\.tables").WithArgs("buses").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("buses"))
	mock.ExpectQuery("information_schema\\.columns").WithArgs("buses", "bus_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	err := store.EnsureSchema(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bus_id") {
		t.Fatalf("expected missing column error, got %v", err)
	}
	if store.schemaReady {
		t.Fatalf("schema must not be marked ready after a failure")
	}
}

func TestSQLStoreCreatesSchemaOnceServerIsReachable(t *testing.T) {
	store, mock := newBareSQLStoreMock(t)
	ctx := context.Background()

	// server down at startup
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	if err := store.Ping(ctx); err == nil {
		t.Fatalf("expected ping failure")
	}

	// still down on the first request
	mock.ExpectQuery("information_schema\\.tables").WithArgs("buses").
		WillReturnError(errors.New("connection refused"))
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS buses").
		WillReturnError(errors.New("connection refused"))
	if _, err := store.CreateBus(ctx, models.Bus{BusID: "B1"}); !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}

	// server back: schema is created before the insert
	expectSchemaCreated(mock)
	mock.ExpectExec("INSERT INTO buses").
		WithArgs("B1", "", 0, "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	got, err := store.CreateBus(ctx, models.Bus{BusID: "B1"})
	if err != nil {
		t.Fatalf("CreateBus error: %v", err)
	}
	if got.ID != "1" {
		t.Fatalf("ID = %q, want 1", got.ID)
	}

	// schema is not checked again
	mock.ExpectQuery("FROM buses").WithArgs("B1").
		WillReturnError(sql.ErrNoRows)
	if _, err := store.FindBus(ctx, "B1"); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreCreateBusMissingInsertID(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectExec("INSERT INTO buses").
		WillReturnResult(sqlmock.NewErrorResult(errors.New("no insert id")))

	_, err := store.CreateBus(context.Background(), models.Bus{BusID: "B1"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
	if !strings.Contains(err.Error(), "insert bus id") {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSQLStoreCreateBusStoresFieldsVerbatim(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectExec("INSERT INTO buses").
		WithArgs("B1", "D1", 40, "X", "Y", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	got, err := store.CreateBus(context.Background(), models.Bus{
		BusID: "B1", Depo: "D1", NoOfSeats: 40, DriverName: "X", OwnerName: "Y",
	})
	if err != nil {
		t.Fatalf("CreateBus error: %v", err)
	}
	if got.ID != "7" {
		t.Fatalf("ID = %q, want 7", got.ID)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt not set")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSQLStoreCreateDriverWriteFailure(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectExec("INSERT INTO drivers").
		WillReturnError(errors.New("connection refused"))

	_, err := store.CreateDriver(context.Background(), models.Driver{DriverName: "Ann"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestSQLStoreCreateTrip(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectExec("INSERT INTO trips").
		WithArgs(12, "2026-01-05", 4, "Pune", "Mumbai", 30, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	got, err := store.CreateTrip(context.Background(), models.Trip{
		TripNo: 12, Date: "2026-01-05", BusNo: 4, To: "Pune", Fro: "Mumbai", NoOfSeats: 30,
	})
	if err != nil {
		t.Fatalf("CreateTrip error: %v", err)
	}
	if got.ID != "3" || got.To != "Pune" {
		t.Fatalf("unexpected trip %+v", got)
	}
}

func TestSQLStoreFindBus(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM buses").WithArgs("B1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_id", "depo", "no_of_seats", "driver_name", "owner_name", "created_at"}).
			AddRow(1, "B1", "D1", 40, "X", "Y", created))

	got, err := store.FindBus(context.Background(), "B1")
	if err != nil {
		t.Fatalf("FindBus error: %v", err)
	}
	if got.ID != "1" || got.Depo != "D1" || got.NoOfSeats != 40 {
		t.Fatalf("unexpected bus %+v", got)
	}
}

func TestSQLStoreFindBusNotFound(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectQuery("FROM buses").WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := store.FindBus(context.Background(), "nope")
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSQLStoreFindDriverReadFailure(t *testing.T) {
	store, mock := newSQLStoreMock(t)

	mock.ExpectQuery("FROM drivers").WithArgs("Ann").
		WillReturnError(errors.New("i/o timeout"))

	_, err := store.FindDriver(context.Background(), "Ann")
	if !domain.IsInternal(err) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestSQLStoreFindTripsLegacyIgnoresOrigin(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "trip_no", "trip_date", "bus_no", "route_to", "route_fro", "no_of_seats", "created_at"}

	mock.ExpectQuery(`WHERE route_to = \? ORDER BY id ASC`).WithArgs("Pune").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 10, "d1", 4, "Pune", "Mumbai", 30, created).
			AddRow(2, 11, "d2", 5, "Pune", "Nashik", 30, created))

	got, err := store.FindTrips(context.Background(), TripFilter{To: "Pune", Fro: "Mumbai", Mode: domain.MatchLegacy})
	if err != nil {
		t.Fatalf("FindTrips error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(got))
	}
	if got[1].Fro != "Nashik" {
		t.Fatalf("legacy filter should keep other origins, got %+v", got[1])
	}
}

func TestSQLStoreFindTripsStrict(t *testing.T) {
	store, mock := newSQLStoreMock(t)
	cols := []string{"id", "trip_no", "trip_date", "bus_no", "route_to", "route_fro", "no_of_seats", "created_at"}

	mock.ExpectQuery(`route_to = \? AND route_fro = \?`).WithArgs("Pune", "Mumbai").
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := store.FindTrips(context.Background(), TripFilter{To: "Pune", Fro: "Mumbai", Mode: domain.MatchStrict})
	if err != nil {
		t.Fatalf("FindTrips error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
