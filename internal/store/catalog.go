// Package store provides the restaurant catalog repository backing the
// party server. The catalog is a read-mostly SQLite table seeded by the
// bundled migrations; each new party draws a shuffled deck from it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-party-swipe/internal/logger"
	"github.com/MKhiriev/go-party-swipe/migrations"
	"github.com/MKhiriev/go-party-swipe/models"
)

// Catalog serves restaurant candidates for new parties.
type Catalog interface {
	// DrawDeck returns up to n candidates in random order.
	DrawDeck(ctx context.Context, n int) ([]models.Restaurant, error)

	// Count returns the number of candidates in the catalog.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying database handle.
	Close() error
}

type catalog struct {
	db  *sql.DB
	log *logger.Logger
}

// NewCatalog opens (creating if necessary) the SQLite catalog at dsn and
// applies pending migrations.
func NewCatalog(ctx context.Context, dsn string, log *logger.Logger) (Catalog, error) {
	if dsn != ":memory:" {
		if err := createDBFileIfNotExists(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening catalog database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("error pinging catalog database: %w", err)
	}

	if err := migrations.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	log.Debug().Str("dsn", dsn).Msg("catalog database ready")
	return &catalog{db: db, log: log}, nil
}

// NewCatalogWithDB wraps an already-open database handle. Used in tests.
func NewCatalogWithDB(db *sql.DB, log *logger.Logger) Catalog {
	return &catalog{db: db, log: log}
}

func (c *catalog) DrawDeck(ctx context.Context, n int) ([]models.Restaurant, error) {
	query, args, err := sq.
		Select("id", "name", "image_url", "description", "rating", "price").
		From("restaurants").
		OrderBy("RANDOM()").
		Limit(uint64(n)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building deck query: %w", err)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error drawing deck: %w", err)
	}
	defer rows.Close()

	var deck []models.Restaurant
	for rows.Next() {
		var r models.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.ImageURL, &r.Description, &r.Rating, &r.Price); err != nil {
			return nil, fmt.Errorf("error scanning restaurant row: %w", err)
		}
		deck = append(deck, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deck rows: %w", err)
	}

	return deck, nil
}

func (c *catalog) Count(ctx context.Context) (int, error) {
	query, args, err := sq.Select("COUNT(*)").From("restaurants").ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building count query: %w", err)
	}

	var count int
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting restaurants: %w", err)
	}

	return count, nil
}

func (c *catalog) Close() error {
	return c.db.Close()
}

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating catalog database file: %w", err)
		}
		f.Close()
	}

	return nil
}
