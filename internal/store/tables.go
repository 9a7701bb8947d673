package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// PriceTableStore serves the fixed pricing master data looked up by table
// identifier.
type PriceTableStore struct {
	db *sqlx.DB
}

type priceTableRow struct {
	ID             string  `db:"table_id"`
	Plan           string  `db:"plan"`
	AdminRate      float64 `db:"admin_rate"`
	ReserveRate    float64 `db:"reserve_rate"`
	InsuranceRate  float64 `db:"insurance_rate"`
	MaxEmbeddedBid float64 `db:"max_embedded_bid"`
}

func (r priceTableRow) toDomain() types.PriceTable {
	return types.PriceTable{
		ID:             r.ID,
		Plan:           types.PlanVariant(r.Plan),
		AdminRate:      r.AdminRate,
		ReserveRate:    r.ReserveRate,
		InsuranceRate:  r.InsuranceRate,
		MaxEmbeddedBid: r.MaxEmbeddedBid,
	}
}

const priceTableColumns = `table_id, plan, admin_rate, reserve_rate, insurance_rate, max_embedded_bid`

func (ps *PriceTableStore) GetByID(ctx context.Context, id string) (*types.PriceTable, error) {
	query := `SELECT ` + priceTableColumns + ` FROM price_tables WHERE table_id = $1`

	var row priceTableRow
	if err := ps.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query price table %s: %w", id, err)
	}
	table := row.toDomain()
	return &table, nil
}

func (ps *PriceTableStore) GetAll(ctx context.Context) ([]types.PriceTable, error) {
	query := `SELECT ` + priceTableColumns + ` FROM price_tables ORDER BY table_id`

	var rows []priceTableRow
	if err := ps.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query price tables: %w", err)
	}
	tables := make([]types.PriceTable, 0, len(rows))
	for _, r := range rows {
		tables = append(tables, r.toDomain())
	}
	return tables, nil
}
