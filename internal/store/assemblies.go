package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type AssemblyStore struct {
	db *sqlx.DB
}

type assemblyRow struct {
	GroupNumber      string    `db:"group_number"`
	Date             time.Time `db:"assembly_date"`
	Contemplated     int       `db:"contemplated"`
	FixedBidCount    int       `db:"fixed_bid_count"`
	FreeBidCount     int       `db:"free_bid_count"`
	AvgFreeBidPct    float64   `db:"avg_free_bid_pct"`
	LowestFreeBidPct float64   `db:"lowest_free_bid_pct"`
}

func (r assemblyRow) toDomain() types.AssemblyRecord {
	return types.AssemblyRecord{
		GroupNumber:      r.GroupNumber,
		Date:             r.Date,
		Contemplated:     r.Contemplated,
		FixedBidCount:    r.FixedBidCount,
		FreeBidCount:     r.FreeBidCount,
		AvgFreeBidPct:    r.AvgFreeBidPct,
		LowestFreeBidPct: r.LowestFreeBidPct,
	}
}

const assemblyColumns = `group_number, assembly_date, contemplated,
	fixed_bid_count, free_bid_count, avg_free_bid_pct, lowest_free_bid_pct`

func (as *AssemblyStore) GetAll(ctx context.Context) ([]types.AssemblyRecord, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies ORDER BY assembly_date DESC`
	return as.selectRecords(ctx, query)
}

func (as *AssemblyStore) GetByGroup(ctx context.Context, number string, limit int) ([]types.AssemblyRecord, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies
	WHERE group_number = $1 ORDER BY assembly_date DESC LIMIT $2`
	return as.selectRecords(ctx, query, number, limit)
}

func (as *AssemblyStore) GetSince(ctx context.Context, since time.Time) ([]types.AssemblyRecord, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies
	WHERE assembly_date >= $1 ORDER BY assembly_date DESC`
	return as.selectRecords(ctx, query, since)
}

func (as *AssemblyStore) Insert(ctx context.Context, record *types.AssemblyRecord) error {
	query := `INSERT INTO assemblies (` + assemblyColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (group_number, assembly_date) DO UPDATE SET
		contemplated = EXCLUDED.contemplated,
		fixed_bid_count = EXCLUDED.fixed_bid_count,
		free_bid_count = EXCLUDED.free_bid_count,
		avg_free_bid_pct = EXCLUDED.avg_free_bid_pct,
		lowest_free_bid_pct = EXCLUDED.lowest_free_bid_pct`

	_, err := as.db.ExecContext(ctx, query,
		record.GroupNumber, record.Date, record.Contemplated,
		record.FixedBidCount, record.FreeBidCount,
		record.AvgFreeBidPct, record.LowestFreeBidPct)
	if err != nil {
		return fmt.Errorf("failed to insert assembly record for group %s: %w", record.GroupNumber, err)
	}
	return nil
}

func (as *AssemblyStore) selectRecords(ctx context.Context, query string, args ...interface{}) ([]types.AssemblyRecord, error) {
	var rows []assemblyRow
	if err := as.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query assemblies: %w", err)
	}
	records := make([]types.AssemblyRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.toDomain())
	}
	return records, nil
}
