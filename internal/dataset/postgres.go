package dataset

import (
	"context"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/apparel-insights/inventory-sim/internal/config"
)

// DB wraps the sqlx pool used by the optional Postgres-backed historical
// source. A weighted semaphore caps concurrent reads the same way the
// ingestion side does.
type DB struct {
	*sqlx.DB
	sem *semaphore.Weighted
}

// NewDB opens a connection pool against the configured database.
func NewDB(cfg *config.DatabaseConfig) (*DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{DB: db, sem: semaphore.NewWeighted(10)}, nil
}

type salesRow struct {
	Brand        string    `db:"brand"`
	InvoiceDate  time.Time `db:"invoice_date"`
	Product      string    `db:"product"`
	UnitsSold    float64   `db:"units_sold"`
	PricePerUnit float64   `db:"price_per_unit"`
	TotalSales   float64   `db:"total_sales"`
}

// LoadFromDB reads the full brand_sales table into a Store. Unknown brand
// spellings are normalized; rows for unsupported brands are dropped by the
// Store itself.
func LoadFromDB(ctx context.Context, db *DB) (*Store, error) {
	if err := db.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire db slot: %w", err)
	}
	defer db.sem.Release(1)

	var rows []salesRow
	query := `
		SELECT brand, invoice_date, COALESCE(product, '') AS product,
		       COALESCE(units_sold, 0) AS units_sold,
		       COALESCE(price_per_unit, 0) AS price_per_unit,
		       COALESCE(total_sales, 0) AS total_sales
		FROM brand_sales
		ORDER BY invoice_date`
	if err := db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select brand_sales: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, Record{
			Brand:        NormalizeBrand(r.Brand),
			Date:         r.InvoiceDate,
			Product:      r.Product,
			UnitsSold:    r.UnitsSold,
			PricePerUnit: r.PricePerUnit,
			TotalSales:   r.TotalSales,
		})
	}

	log.Info().Int("rows", len(records)).Msg("loaded historical data from postgres")
	if len(records) == 0 {
		return NewStore(SampleRecords(), true), nil
	}
	return NewStore(records, false), nil
}
