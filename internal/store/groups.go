package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

var ErrNotFound = errors.New("record not found")

type GroupStore struct {
	db *sqlx.DB
}

type groupRow struct {
	Number             string         `db:"group_number"`
	Species            string         `db:"species"`
	Vacancies          int            `db:"vacancies"`
	CreditMin          float64        `db:"credit_min"`
	CreditMax          float64        `db:"credit_max"`
	MaxTermMonths      int            `db:"max_term_months"`
	NextAssembly       time.Time      `db:"next_assembly"`
	AcceptsFixedBid    bool           `db:"accepts_fixed_bid"`
	AcceptsEmbeddedBid bool           `db:"accepts_embedded_bid"`
	Plans              pq.StringArray `db:"plans"`
}

func (r groupRow) toDomain() types.Group {
	plans := make([]types.PlanVariant, 0, len(r.Plans))
	for _, p := range r.Plans {
		plans = append(plans, types.PlanVariant(p))
	}
	return types.Group{
		Number:             r.Number,
		Species:            types.Species(r.Species),
		Vacancies:          r.Vacancies,
		CreditMin:          r.CreditMin,
		CreditMax:          r.CreditMax,
		MaxTermMonths:      r.MaxTermMonths,
		NextAssembly:       r.NextAssembly,
		AcceptsFixedBid:    r.AcceptsFixedBid,
		AcceptsEmbeddedBid: r.AcceptsEmbeddedBid,
		Plans:              plans,
	}
}

const groupColumns = `group_number, species, vacancies, credit_min, credit_max,
	max_term_months, next_assembly, accepts_fixed_bid, accepts_embedded_bid, plans`

func (gs *GroupStore) GetAll(ctx context.Context) ([]types.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups ORDER BY group_number`

	var rows []groupRow
	if err := gs.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}

	groups := make([]types.Group, 0, len(rows))
	for _, r := range rows {
		groups = append(groups, r.toDomain())
	}
	return groups, nil
}

func (gs *GroupStore) GetByNumber(ctx context.Context, number string) (*types.Group, error) {
	query := `SELECT ` + groupColumns + ` FROM groups WHERE group_number = $1`

	var row groupRow
	if err := gs.db.GetContext(ctx, &row, query, number); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query group %s: %w", number, err)
	}
	group := row.toDomain()
	return &group, nil
}

func (gs *GroupStore) Upsert(ctx context.Context, group *types.Group) error {
	query := `INSERT INTO groups (` + groupColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (group_number) DO UPDATE SET
		species = EXCLUDED.species,
		vacancies = EXCLUDED.vacancies,
		credit_min = EXCLUDED.credit_min,
		credit_max = EXCLUDED.credit_max,
		max_term_months = EXCLUDED.max_term_months,
		next_assembly = EXCLUDED.next_assembly,
		accepts_fixed_bid = EXCLUDED.accepts_fixed_bid,
		accepts_embedded_bid = EXCLUDED.accepts_embedded_bid,
		plans = EXCLUDED.plans`

	plans := make([]string, 0, len(group.Plans))
	for _, p := range group.Plans {
		plans = append(plans, string(p))
	}

	_, err := gs.db.ExecContext(ctx, query,
		group.Number, string(group.Species), group.Vacancies,
		group.CreditMin, group.CreditMax, group.MaxTermMonths,
		group.NextAssembly, group.AcceptsFixedBid, group.AcceptsEmbeddedBid,
		pq.StringArray(plans))
	if err != nil {
		return fmt.Errorf("failed to upsert group %s: %w", group.Number, err)
	}
	return nil
}
