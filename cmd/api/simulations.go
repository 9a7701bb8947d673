package main

import (
	"errors"
	"net/http"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/engine"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/response"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/store"
)

type CreateSimulationRequest struct {
	types.SimulationInput
	// BaseInstallment may be omitted when the financial-table catalog has
	// the exact credit/term entry for the chosen table.
	BaseInstallment float64 `json:"base_installment"`
	CacheKey        string  `json:"cache_key"`
}

type SimulationResponse = response.APIResponse[types.SimulationResult]

func (app *application) handleCreateSimulation(w http.ResponseWriter, r *http.Request) {
	var req CreateSimulationRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	ctx := r.Context()

	table, err := app.store.PriceTables.GetByID(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "price table not found: "+req.TableID)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to load price table: "+err.Error())
		return
	}

	if err := engine.Validate(req.SimulationInput, *table); err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	baseInstallment := req.BaseInstallment
	if baseInstallment <= 0 {
		entry, err := app.store.FinancialTables.FindInstallment(ctx, req.TableID, req.Credit, req.TermMonths)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeJSONError(w, http.StatusUnprocessableEntity,
					"base_installment not provided and no financial table entry matches the requested credit and term")
				return
			}
			writeJSONError(w, http.StatusInternalServerError, "failed to resolve base installment: "+err.Error())
			return
		}
		baseInstallment = entry.Installment
	}

	result := engine.Calculate(req.SimulationInput, *table, baseInstallment)

	// Saving the last simulation is not critical
	if req.CacheKey != "" && app.cache != nil {
		if err := app.cache.SaveLast(ctx, req.CacheKey, result); err != nil {
			app.logger.WithError(err).Warn("Failed to cache simulation", map[string]interface{}{"key": req.CacheKey})
		}
	}

	resp := &SimulationResponse{
		Success: true,
		Data:    result,
		Message: "Simulation calculated successfully",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetLastSimulation(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSONError(w, http.StatusBadRequest, "missing key parameter")
		return
	}
	if app.cache == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "simulation cache is not configured")
		return
	}

	result, found, err := app.cache.GetLast(r.Context(), key)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to read cached simulation: "+err.Error())
		return
	}
	if !found {
		writeJSONError(w, http.StatusNotFound, "no simulation stored under this key")
		return
	}

	resp := &SimulationResponse{
		Success: true,
		Data:    *result,
		Message: "Last simulation retrieved",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
