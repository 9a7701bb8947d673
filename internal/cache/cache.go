// Package cache persists the last simulation of each agent under an opaque
// key, so a proposal can be reopened without recomputing.
package cache

import (
	"context"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
)

type SimulationCache interface {
	SaveLast(ctx context.Context, key string, result types.SimulationResult) error
	GetLast(ctx context.Context, key string) (*types.SimulationResult, bool, error)
}

// MockCache is an in-memory SimulationCache for tests.
type MockCache struct {
	Data map[string]types.SimulationResult
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]types.SimulationResult),
	}
}

func (m *MockCache) SaveLast(_ context.Context, key string, result types.SimulationResult) error {
	m.Data[key] = result
	return nil
}

func (m *MockCache) GetLast(_ context.Context, key string) (*types.SimulationResult, bool, error) {
	result, ok := m.Data[key]
	if !ok {
		return nil, false, nil
	}
	return &result, true, nil
}
