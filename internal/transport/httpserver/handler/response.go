package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	childrendomain "sponsorship-app-go/internal/domain/children"
	photosdomain "sponsorship-app-go/internal/domain/photos"
	proxiesdomain "sponsorship-app-go/internal/domain/proxies"
	schoolsdomain "sponsorship-app-go/internal/domain/schools"
	sponsorsdomain "sponsorship-app-go/internal/domain/sponsors"
	userdomain "sponsorship-app-go/internal/domain/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}

// statusForError maps domain sentinels onto HTTP statuses. Anything unmapped
// is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, childrendomain.ErrChildNotFound),
		errors.Is(err, childrendomain.ErrSchoolNotFound),
		errors.Is(err, childrendomain.ErrSponsorNotFound),
		errors.Is(err, schoolsdomain.ErrSchoolNotFound),
		errors.Is(err, proxiesdomain.ErrProxyNotFound),
		errors.Is(err, sponsorsdomain.ErrSponsorNotFound),
		errors.Is(err, sponsorsdomain.ErrProxyNotFound),
		errors.Is(err, sponsorsdomain.ErrSponsorshipNotFound),
		errors.Is(err, photosdomain.ErrPhotoNotFound),
		errors.Is(err, photosdomain.ErrChildNotFound),
		errors.Is(err, userdomain.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, userdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized

	case errors.Is(err, userdomain.ErrNotApproved),
		errors.Is(err, userdomain.ErrUserDisabled):
		return http.StatusForbidden

	// Conflicts ride the 400 bucket too; the API reports them with an
	// explanatory message rather than a 409.
	case errors.Is(err, sponsorsdomain.ErrDuplicateActiveSponsorship),
		errors.Is(err, sponsorsdomain.ErrHasActiveSponsorships),
		errors.Is(err, schoolsdomain.ErrNameTaken),
		errors.Is(err, schoolsdomain.ErrSchoolHasChildren),
		errors.Is(err, userdomain.ErrUsernameTaken),
		errors.Is(err, childrendomain.ErrFirstNameRequired),
		errors.Is(err, childrendomain.ErrLastNameRequired),
		errors.Is(err, childrendomain.ErrSchoolRequired),
		errors.Is(err, childrendomain.ErrParentNamesRequired),
		errors.Is(err, schoolsdomain.ErrNameRequired),
		errors.Is(err, proxiesdomain.ErrFullNameRequired),
		errors.Is(err, sponsorsdomain.ErrFullNameRequired),
		errors.Is(err, sponsorsdomain.ErrInvalidEmail),
		errors.Is(err, photosdomain.ErrDataRequired),
		errors.Is(err, photosdomain.ErrMimeTypeRequired),
		errors.Is(err, userdomain.ErrUsernameRequired),
		errors.Is(err, userdomain.ErrPasswordTooShort):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// respondError hides internal failure detail unless debug mode is on.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		h.log.InternalError("request failed", err)
		message := "internal server error"
		if h.cfg.Debug {
			message = err.Error()
		}
		writeError(w, status, message)
		return
	}
	writeError(w, status, err.Error())
}
