// internal/catalog/postgres_store.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"card-advisor/internal/models"
)

// PostgresStore reads the catalog from a cards table. Rows are ordered by
// the explicit position column so catalog order (and thus score tie-breaking)
// is stable across restarts.
type PostgresStore struct {
	db    *sql.DB
	table string
}

// NewPostgresStore creates a PostgresStore over an existing connection.
func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = "cards"
	}
	return &PostgresStore{db: db, table: table}
}

// Load reads every card row. The reward_rate and age_range columns hold
// JSON arrays.
func (s *PostgresStore) Load(ctx context.Context) ([]models.CardRecord, error) {
	query := fmt.Sprintf(`
		SELECT card_name, min_monthly_income, joining_fee, annual_fee,
		       reward_type, reward_rate, age_range, employment_type,
		       eligibility, features, card_image
		FROM %s ORDER BY position`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query catalog table %s: %w", s.table, err)
	}
	defer rows.Close()

	var cards []models.CardRecord
	for rows.Next() {
		var (
			card     models.CardRecord
			rates    []byte
			ages     []byte
			features sql.NullString
			image    sql.NullString
		)

		err := rows.Scan(
			&card.CardName, &card.MinMonthlyIncome, &card.JoiningFee,
			&card.AnnualFee, &card.RewardType, &rates, &ages,
			&card.EmploymentType, &card.Eligibility, &features, &image,
		)
		if err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}

		if err := json.Unmarshal(rates, &card.RewardRate); err != nil {
			card.RewardRate = []float64{0.0}
		}
		if len(ages) > 0 {
			if err := json.Unmarshal(ages, &card.AgeRange); err != nil {
				card.AgeRange = nil
			}
		}
		card.Features = features.String
		card.CardImage = image.String

		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}

	return cards, nil
}
