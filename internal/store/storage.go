package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type Storage struct {
	Groups interface {
		GetAll(ctx context.Context) ([]types.Group, error)
		GetByNumber(ctx context.Context, number string) (*types.Group, error)
		Upsert(ctx context.Context, group *types.Group) error
	}

	Assemblies interface {
		GetAll(ctx context.Context) ([]types.AssemblyRecord, error)
		GetByGroup(ctx context.Context, number string, limit int) ([]types.AssemblyRecord, error)
		GetSince(ctx context.Context, since time.Time) ([]types.AssemblyRecord, error)
		Insert(ctx context.Context, record *types.AssemblyRecord) error
	}

	PriceTables interface {
		GetByID(ctx context.Context, id string) (*types.PriceTable, error)
		GetAll(ctx context.Context) ([]types.PriceTable, error)
	}

	FinancialTables interface {
		GetAll(ctx context.Context) ([]types.FinancialEntry, error)
		FindInstallment(ctx context.Context, tableID string, credit float64, termMonths int) (*types.FinancialEntry, error)
	}

	Weights interface {
		GetLatest(ctx context.Context) (*types.NeuralWeights, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Groups:          &GroupStore{db: db},
		Assemblies:      &AssemblyStore{db: db},
		PriceTables:     &PriceTableStore{db: db},
		FinancialTables: &FinancialTableStore{db: db},
		Weights:         &WeightsStore{db: db},
	}
}
