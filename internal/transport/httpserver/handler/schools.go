package handler

import (
	"net/http"

	schoolsdomain "sponsorship-app-go/internal/domain/schools"
)

type schoolRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	IsActive *bool   `json:"isActive"`
}

func (h *Handlers) ListSchools(w http.ResponseWriter, r *http.Request) {
	items, err := h.Schools.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid school id")
		return
	}

	school, err := h.Schools.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (h *Handlers) CreateSchool(w http.ResponseWriter, r *http.Request) {
	var req schoolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	location := ""
	if req.Location != nil {
		location = *req.Location
	}

	school, err := h.Schools.Create(r.Context(), schoolsdomain.CreateInput{
		Name:     name,
		Location: location,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, school)
}

func (h *Handlers) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid school id")
		return
	}

	var req schoolRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	school, err := h.Schools.Update(r.Context(), id, schoolsdomain.UpdateInput{
		Name:     req.Name,
		Location: req.Location,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, school)
}

func (h *Handlers) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid school id")
		return
	}

	if err := h.Schools.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
