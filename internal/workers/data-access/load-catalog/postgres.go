// internal/workers/data-access/load-catalog/postgres.go
package loadcatalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"

	"sales-workers/internal/common/errors"
	"sales-workers/internal/models"
)

var tableName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresSource reads the products table. Tags are stored as a jsonb array.
type PostgresSource struct {
	db    *sql.DB
	query string
}

func NewPostgresSource(db *sql.DB, table string, limit int) (*PostgresSource, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid catalog table %q", table)
	}
	query := fmt.Sprintf(
		`SELECT id, title, description, price, category, tags, rating, popularity_score FROM %s WHERE shop_id = $1 ORDER BY id LIMIT %d`,
		table, limit,
	)
	return &PostgresSource{db: db, query: query}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Fetch(ctx context.Context, shopID string) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, s.query, shopID)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.NewQueryExecutionFailedError("catalog", err)
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		var (
			p           models.Product
			description sql.NullString
			category    sql.NullString
			tags        []byte
			rating      sql.NullFloat64
			popularity  sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.Title, &description, &p.Price, &category, &tags, &rating, &popularity); err != nil {
			return nil, errors.NewQueryExecutionFailedError("catalog", err)
		}
		p.Description = description.String
		p.Category = category.String
		p.Rating = rating.Float64
		p.PopularityScore = popularity.Float64
		if len(tags) > 0 {
			// Malformed tags drop the tags, not the product.
			_ = json.Unmarshal(tags, &p.Tags)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewQueryExecutionFailedError("catalog", err)
	}
	return products, nil
}
