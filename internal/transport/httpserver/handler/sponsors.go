package handler

import (
	"net/http"

	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
	"sponsorship-app-go/internal/pagination"
)

type sponsorRequest struct {
	FullName   *string `json:"fullName"`
	Contact    *string `json:"contact"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	ProxyID    *uint   `json:"proxyId"`
	ClearProxy bool    `json:"clearProxy"`
}

type sponsorsListResponse struct {
	Data       []sponsorsdomain.Sponsor `json:"data"`
	Pagination pagination.Pagination    `json:"pagination"`
}

func (h *Handlers) ListSponsors(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	items, window, err := h.Sponsors.List(r.Context(), sponsorsFilter(r), page, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsorsListResponse{Data: items, Pagination: window})
}

func (h *Handlers) GetSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sponsor id")
		return
	}

	sponsor, err := h.Sponsors.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsor)
}

func (h *Handlers) CreateSponsor(w http.ResponseWriter, r *http.Request) {
	var req sponsorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fullName := ""
	if req.FullName != nil {
		fullName = *req.FullName
	}

	sponsor, err := h.Sponsors.Create(r.Context(), sponsorsdomain.CreateInput{
		FullName: fullName,
		Contact:  req.Contact,
		Email:    req.Email,
		Phone:    req.Phone,
		ProxyID:  req.ProxyID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sponsor)
}

func (h *Handlers) UpdateSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sponsor id")
		return
	}

	var req sponsorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sponsor, err := h.Sponsors.Update(r.Context(), id, sponsorsdomain.UpdateInput{
		FullName:   req.FullName,
		Contact:    req.Contact,
		Email:      req.Email,
		Phone:      req.Phone,
		ProxyID:    req.ProxyID,
		ClearProxy: req.ClearProxy,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sponsor)
}

func (h *Handlers) DeleteSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sponsor id")
		return
	}

	if err := h.Sponsors.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
