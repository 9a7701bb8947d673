package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/consortium/types"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/response"
	"github.com/alessandroaun/SimuladorConsorcio-sub000/internal/store"
)

type GroupListResponse = response.APIResponse[[]types.Group]
type AssemblyListResponse = response.APIResponse[[]types.AssemblyRecord]

func isValidGroupNumber(number string) bool {
	if number == "" {
		return false
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (app *application) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := app.store.Groups.GetAll(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load group catalog: "+err.Error())
		return
	}

	resp := &GroupListResponse{
		Success: true,
		Data:    groups,
		Message: "Group catalog retrieved",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetGroupAssemblies(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if !isValidGroupNumber(number) {
		writeJSONError(w, http.StatusBadRequest, "invalid group number")
		return
	}

	limit := 12
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSONError(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = parsed
	}
	ctx := r.Context()

	if _, err := app.store.Groups.GetByNumber(ctx, number); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "group not found: "+number)
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to load group: "+err.Error())
		return
	}

	records, err := app.store.Assemblies.GetByGroup(ctx, number, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to load assembly history: "+err.Error())
		return
	}

	resp := &AssemblyListResponse{
		Success: true,
		Data:    records,
		Message: "Assembly history retrieved",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
