//go:build integration
// +build integration

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/guttosm/tickerpulse/internal/domain/models"
	_ "github.com/lib/pq"
	goose "github.com/pressly/goose/v3"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres spins up a Postgres container and returns a DSN and terminate func.
func startPostgres(t *testing.T) (dsn string, terminate func()) {
	t.Helper()
	ctx := context.Background()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "tickerpulse",
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
		},
		WaitingFor: wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
			return fmt.Sprintf("host=%s port=%s user=postgres password=postgres dbname=tickerpulse sslmode=disable", host, port.Port())
		}).WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("container start: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/tickerpulse?sslmode=disable", host, port.Port())
	terminate = func() { _ = container.Terminate(context.Background()) }
	return dsn, terminate
}

func openDB(t *testing.T, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	if err := goose.SetDialect("postgres"); err != nil {
		t.Fatalf("dialect: %v", err)
	}
	path := filepath.Join("..", "..", "db", "migrations")
	if err := goose.Up(db, path); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
}

func TestRepository_Integration(t *testing.T) {
	dsn, terminate := startPostgres(t)
	defer terminate()
	db := openDB(t, dsn)
	defer db.Close()
	runMigrations(t, db)

	repo := NewPricesRepository(db)
	ctx := context.Background()
	period := models.YearPeriod(2020)

	first := models.Series{Ticker: "AAPL", Source: "yahoo", Points: []models.PricePoint{
		{Date: day(2020, 1, 2), Close: 75.09},
		{Date: day(2020, 6, 1), Close: 80.46},
		{Date: day(2020, 12, 31), Close: 132.69},
	}}
	if err := repo.ReplaceCloses(ctx, first, period); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// a second write for the same window must replace, not conflict
	second := models.Series{Ticker: "AAPL", Source: "stooq", Points: first.Points[:2]}
	if err := repo.ReplaceCloses(ctx, second, period); err != nil {
		t.Fatalf("replace again: %v", err)
	}

	cases := []struct {
		name   string
		period models.Period
		want   int
	}{
		{name: "full year", period: period, want: 2},
		{name: "first half", period: models.Period{Start: day(2020, 1, 1), End: day(2020, 6, 30)}, want: 2},
		{name: "other year", period: models.YearPeriod(2019), want: 0},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			s, err := repo.GetCloses(ctx, "AAPL", tt.period)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if len(s.Points) != tt.want {
				t.Fatalf("got %d points, want %d", len(s.Points), tt.want)
			}
		})
	}

	t.Run("fetch log covers sub-period", func(t *testing.T) {
		_, ok, err := repo.LatestFetch(ctx, "AAPL", models.Period{Start: day(2020, 3, 1), End: day(2020, 4, 1)})
		if err != nil || !ok {
			t.Fatalf("want logged fetch, got ok=%v err=%v", ok, err)
		}
		_, ok, err = repo.LatestFetch(ctx, "AAPL", models.YearRangePeriod(2019, 2020))
		if err != nil || ok {
			t.Fatalf("wider period must not be covered, got ok=%v err=%v", ok, err)
		}
	})
}
