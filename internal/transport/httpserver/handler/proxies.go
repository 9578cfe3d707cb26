package handler

import (
	"net/http"

	proxiesdomain "sponsorship-app-go/internal/domain/proxies"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
)

type proxyRequest struct {
	FullName    *string `json:"fullName"`
	Role        *string `json:"role"`
	Contact     *string `json:"contact"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`
}

func (h *Handlers) ListProxies(w http.ResponseWriter, r *http.Request) {
	items, err := h.Proxies.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) GetProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid proxy id")
		return
	}

	proxy, err := h.Proxies.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	// A single proxy page also lists the sponsors it represents.
	filter := sponsorsdomain.ListFilter{Proxy: sponsorsdomain.ProxyFilter{ID: &id}}
	represented, _, err := h.Sponsors.List(r.Context(), filter, 1, proxySponsorsLimit)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, proxyDetailResponse{Proxy: *proxy, Sponsors: represented})
}

// proxySponsorsLimit bounds the sponsor expansion on a proxy detail page.
const proxySponsorsLimit = 200

type proxyDetailResponse struct {
	proxiesdomain.Proxy
	Sponsors []sponsorsdomain.Sponsor `json:"sponsors"`
}

func (h *Handlers) CreateProxy(w http.ResponseWriter, r *http.Request) {
	var req proxyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fullName := ""
	if req.FullName != nil {
		fullName = *req.FullName
	}
	role := ""
	if req.Role != nil {
		role = *req.Role
	}

	proxy, err := h.Proxies.Create(r.Context(), proxiesdomain.CreateInput{
		FullName:    fullName,
		Role:        role,
		Contact:     req.Contact,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, proxy)
}

func (h *Handlers) UpdateProxy(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid proxy id")
		return
	}

	var req proxyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proxy, err := h.Proxies.Update(r.Context(), id, proxiesdomain.UpdateInput{
		FullName:    req.FullName,
		Role:        req.Role,
		Contact:     req.Contact,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, proxy)
}
