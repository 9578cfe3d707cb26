package handler

import (
	"net/http"

	photosdomain "sponsorship-app-go/internal/domain/photos"
)

type addPhotoRequest struct {
	Data        string  `json:"data"`
	MimeType    string  `json:"mimeType"`
	Filename    *string `json:"filename"`
	Size        *int64  `json:"size"`
	Description *string `json:"description"`
}

type updatePhotoRequest struct {
	Description *string `json:"description"`
}

func (h *Handlers) ListChildPhotos(w http.ResponseWriter, r *http.Request) {
	childID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	items, err := h.Photos.ListByChild(r.Context(), childID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) AddChildPhoto(w http.ResponseWriter, r *http.Request) {
	childID, ok := idParam(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid child id")
		return
	}

	var req addPhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, err := h.Photos.Add(r.Context(), photosdomain.AddInput{
		ChildID:     childID,
		Data:        req.Data,
		MimeType:    req.MimeType,
		Filename:    req.Filename,
		Size:        req.Size,
		Description: req.Description,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}

	h.log.Info("photo added", "childId", childID, "photoId", photo.ID)
	writeJSON(w, http.StatusCreated, photo)
}

func (h *Handlers) UpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "photoId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	var req updatePhotoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	photo, err := h.Photos.UpdateDescription(r.Context(), id, req.Description)
	if err != nil {
		h.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, photo)
}

func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "photoId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid photo id")
		return
	}

	if err := h.Photos.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
