package handler

import (
	"net/http"
	"strings"

	childrendomain "sponsorship-app-go/internal/domain/children"
	"sponsorship-app-go/internal/pagination"
)

type newSponsorPayload struct {
	FullName string  `json:"fullName"`
	Contact  *string `json:"contact"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	ProxyID  *uint   `json:"proxyId"`
}

type createChildRequest struct {
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	DateOfBirth    string  `json:"dateOfBirth"`
	Gender         string  `json:"gender"`
	Class          string  `json:"class"`
	FatherFullName string  `json:"fatherFullName"`
	MotherFullName string  `json:"motherFullName"`
	Address        *string `json:"address"`
	Contact        *string `json:"contact"`
	Story          *string `json:"story"`
	Comment        *string `json:"comment"`
	SchoolID       uint    `json:"schoolId"`

	SponsorIDs []uint             `json:"sponsorIds"`
	NewSponsor *newSponsorPayload `json:"newSponsor"`
}

type updateChildRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	DateOfBirth    *string `json:"dateOfBirth"`
	Gender         *string `json:"gender"`
	Class          *string `json:"class"`
	FatherFullName *string `json:"fatherFullName"`
	MotherFullName *string `json:"motherFullName"`
	Address        *string `json:"address"`
	Contact        *string `json:"contact"`
	Story          *string `json:"story"`
	Comment        *string `json:"comment"`
	SchoolID       *uint   `json:"schoolId"`
}

type attachSponsorRequest struct {
	SponsorID     uint     `json:"sponsorId"`
	MonthlyAmount *float64 `json:"monthlyAmount"`
	PaymentMethod *string  `json:"paymentMethod"`
	Notes         *string  `json:"notes"`
}

type childrenListResponse struct {
	Data       []childrendomain.Child `json:"data"`
	Pagination pagination.Pagination  `json:"pagination"`
}

func (h *Handlers) ListChildren(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := childrenFilter(r)

	items, window, err := h.Children.List(r.Context(), filter, page, limit)
	if err != nil {
		h.respondError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, childrenListResponse{Data: items, Pagination: window})
}

func (h *Handlers) ChildrenStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Children.Statistics(r.Context(), childrenFilter(r))
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handlers) GetChild(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	child, err := h.Children.Get(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

func (h *Handlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	dateOfBirth, err := parseDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dateOfBirth")
		return
	}

	input := childrendomain.CreateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		DateOfBirth:    dateOfBirth,
		Gender:         req.Gender,
		Class:          req.Class,
		FatherFullName: req.FatherFullName,
		MotherFullName: req.MotherFullName,
		Address:        req.Address,
		Contact:        req.Contact,
		Story:          req.Story,
		Comment:        req.Comment,
		SchoolID:       req.SchoolID,
		SponsorIDs:     req.SponsorIDs,
	}
	if req.NewSponsor != nil {
		input.NewSponsor = &childrendomain.NewSponsorInput{
			FullName: req.NewSponsor.FullName,
			Contact:  req.NewSponsor.Contact,
			Email:    req.NewSponsor.Email,
			Phone:    req.NewSponsor.Phone,
			ProxyID:  req.NewSponsor.ProxyID,
		}
	}

	child, err := h.Children.Create(r.Context(), input)
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("child registered", "childId", child.ID, "school", child.SchoolID)
	writeJSON(w, http.StatusCreated, child)
}

func (h *Handlers) UpdateChild(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var req updateChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := childrendomain.UpdateInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Gender:         req.Gender,
		Class:          req.Class,
		FatherFullName: req.FatherFullName,
		MotherFullName: req.MotherFullName,
		Address:        req.Address,
		Contact:        req.Contact,
		Story:          req.Story,
		Comment:        req.Comment,
		SchoolID:       req.SchoolID,
	}
	if req.DateOfBirth != nil && strings.TrimSpace(*req.DateOfBirth) != "" {
		parsed, err := parseDate(*req.DateOfBirth)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid dateOfBirth")
			return
		}
		input.DateOfBirth = parsed
	}

	child, err := h.Children.Update(r.Context(), id, input)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, child)
}

// ArchiveChild soft-deletes: the row stays for history but drops out of every
// listing.
func (h *Handlers) ArchiveChild(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	if err := h.Children.Archive(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("child archived", "childId", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) AttachSponsor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var req attachSponsorRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SponsorID == 0 {
		writeError(w, http.StatusBadRequest, "sponsorId is required")
		return
	}

	sponsorship, err := h.Children.AttachSponsor(r.Context(), id, childrendomain.AttachSponsorInput{
		SponsorID:     req.SponsorID,
		MonthlyAmount: req.MonthlyAmount,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("sponsorship created", "childId", id, "sponsorId", req.SponsorID)
	writeJSON(w, http.StatusCreated, sponsorship)
}

func (h *Handlers) EndSponsorship(w http.ResponseWriter, r *http.Request) {
	childID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}
	sponsorID, ok := idParam(r, "sponsorId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid sponsor id")
		return
	}

	if err := h.Children.EndSponsorship(r.Context(), childID, sponsorID); err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("sponsorship ended", "childId", childID, "sponsorId", sponsorID)
	w.WriteHeader(http.StatusNoContent)
}
