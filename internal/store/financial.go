package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type FinancialTableStore struct {
	db *sqlx.DB
}

type financialRow struct {
	TableID     string  `db:"table_id"`
	Plan        string  `db:"plan"`
	Credit      float64 `db:"credit"`
	TermMonths  int     `db:"term_months"`
	Installment float64 `db:"installment"`
}

func (r financialRow) toDomain() types.FinancialEntry {
	return types.FinancialEntry{
		TableID:     r.TableID,
		Plan:        types.PlanVariant(r.Plan),
		Credit:      r.Credit,
		TermMonths:  r.TermMonths,
		Installment: r.Installment,
	}
}

const financialColumns = `table_id, plan, credit, term_months, installment`

func (fs *FinancialTableStore) GetAll(ctx context.Context) ([]types.FinancialEntry, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_tables ORDER BY table_id, credit, term_months`

	var rows []financialRow
	if err := fs.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query financial tables: %w", err)
	}
	entries := make([]types.FinancialEntry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, r.toDomain())
	}
	return entries, nil
}

// FindInstallment returns the published installment for an exact credit,
// term and table combination.
func (fs *FinancialTableStore) FindInstallment(ctx context.Context, tableID string, credit float64, termMonths int) (*types.FinancialEntry, error) {
	query := `SELECT ` + financialColumns + ` FROM financial_tables
	WHERE table_id = $1 AND credit = $2 AND term_months = $3`

	var row financialRow
	if err := fs.db.GetContext(ctx, &row, query, tableID, credit, termMonths); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query installment for table %s: %w", tableID, err)
	}
	entry := row.toDomain()
	return &entry, nil
}
