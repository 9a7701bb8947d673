package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

// WeightsStore serves the externally trained opportunity model. Documents
// are stored as JSONB, newest first; the engine never writes them.
type WeightsStore struct {
	db *sqlx.DB
}

func (ws *WeightsStore) GetLatest(ctx context.Context) (*types.NeuralWeights, error) {
	query := `SELECT document FROM model_weights ORDER BY created_at DESC LIMIT 1`

	var document []byte
	if err := ws.db.GetContext(ctx, &document, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query model weights: %w", err)
	}

	var weights types.NeuralWeights
	if err := json.Unmarshal(document, &weights); err != nil {
		return nil, fmt.Errorf("failed to decode model weights document: %w", err)
	}
	return &weights, nil
}
