package sponsors

import "errors"

var (
	ErrSponsorNotFound            = errors.New("sponsor not found")
	ErrFullNameRequired           = errors.New("sponsor full name is required")
	ErrProxyNotFound              = errors.New("proxy not found")
	ErrHasActiveSponsorships      = errors.New("sponsor has active sponsorships")
	ErrInvalidEmail               = errors.New("invalid email address")
	ErrSponsorshipNotFound        = errors.New("sponsorship not found")
	ErrDuplicateActiveSponsorship = errors.New("an active sponsorship for this child and sponsor already exists")
)
