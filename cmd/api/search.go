package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/intent"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/match"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/response"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/store"
)

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResult struct {
	Intent  intent.Result `json:"intent"`
	Results []types.Group `json:"results"`
}

type SearchResponse = response.APIResponse[SearchResult]

func (app *application) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := readJSON(w, r, &req); err != nil {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSONError(w, http.StatusBadRequest, "query must not be empty")
		return
	}
	ctx := r.Context()

	groups, err := app.store.Groups.GetAll(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load group catalog: "+err.Error())
		return
	}
	history, err := app.store.Assemblies.GetAll(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load assembly history: "+err.Error())
		return
	}

	// Financial tables and model weights are optional signals; the search
	// degrades without them.
	financial, err := app.store.FinancialTables.GetAll(ctx)
	if err != nil {
		app.logger.WithError(err).Warn("Proceeding without financial tables", nil)
		financial = nil
	}
	weights, err := app.store.Weights.GetLatest(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			app.logger.WithError(err).Warn("Proceeding without model weights", nil)
		}
		weights = nil
	}

	interpreted := intent.Extract(req.Query)
	results := match.Search(match.Input{
		Query:     interpreted,
		Groups:    groups,
		History:   history,
		Financial: financial,
		Weights:   weights,
		Now:       time.Now(),
	})

	resp := &SearchResponse{
		Success: true,
		Data:    SearchResult{Intent: interpreted, Results: results},
		Message: "Search completed",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
