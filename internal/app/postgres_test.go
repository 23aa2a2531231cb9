package app

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/blackswanwtf/macro-indicators-service/config"
)

func testPostgresConfig() config.Config {
	return config.Config{Postgres: config.PostgresConfig{
		User:     "u",
		Password: "p",
		Host:     "h",
		Port:     5432,
		DBName:   "d",
		SSLMode:  "disable",
	}}
}

func TestInitPostgres_OpenError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(testPostgresConfig())
	if err == nil {
		t.Fatalf("expected error from InitPostgres when open fails")
	}
}

func TestInitPostgres_PingError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		// sqlmock DB whose Ping fails (ping monitoring enabled)
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		return db, nil
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(testPostgresConfig())
	if err == nil {
		t.Fatalf("expected ping error from InitPostgres")
	}
}

func TestInitPostgres_DSNFromParts(t *testing.T) {
	var gotDSN string
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		gotDSN = dataSourceName
		return nil, errors.New("stop here")
	}
	t.Cleanup(func() { sqlOpener = old })

	_, _ = InitPostgres(testPostgresConfig())
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if gotDSN != want {
		t.Fatalf("dsn=%q want %q", gotDSN, want)
	}
}
