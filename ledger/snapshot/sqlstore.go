package snapshot

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/ledgerbot/ledger"
)

// SQL persists the ledger in a single records table. Save deletes and
// reinserts the whole collection inside one transaction, which keeps the
// rewrite atomic for concurrent readers of the database.
type SQL struct {
	db *sqlx.DB
}

// NewSQL wraps an open database handle. Schema setup is the caller's
// responsibility (migrations run during bootstrap).
func NewSQL(db *sqlx.DB) *SQL {
	return &SQL{db: db}
}

// Load reads the persisted collection ordered by id. An empty table is a
// legitimately persisted empty ledger, so found is always true.
func (s *SQL) Load(ctx context.Context) ([]ledger.Record, bool, error) {
	var records []ledger.Record
	err := s.db.SelectContext(ctx, &records,
		`SELECT id, name, cost, expenses, final_price, profit, created_at, updated_at, date
		 FROM records ORDER BY id`)
	if err != nil {
		return nil, false, fmt.Errorf("select records: %w", err)
	}
	return records, true, nil
}

// Save rewrites the records table with the given collection.
func (s *SQL) Save(ctx context.Context, records []ledger.Record) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	for i := range records {
		_, err := tx.NamedExecContext(ctx,
			`INSERT INTO records (id, name, cost, expenses, final_price, profit, created_at, updated_at, date)
			 VALUES (:id, :name, :cost, :expenses, :final_price, :profit, :created_at, :updated_at, :date)`,
			&records[i])
		if err != nil {
			return fmt.Errorf("insert record %d: %w", records[i].ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot tx: %w", err)
	}
	return nil
}

// Close closes the database handle.
func (s *SQL) Close() error { return s.db.Close() }
