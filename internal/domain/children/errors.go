package children

import "errors"

var (
	ErrChildNotFound       = errors.New("child not found")
	ErrSchoolNotFound      = errors.New("school not found")
	ErrSponsorNotFound     = errors.New("sponsor not found")
	ErrFirstNameRequired   = errors.New("first name is required")
	ErrLastNameRequired    = errors.New("last name is required")
	ErrSchoolRequired      = errors.New("school is required")
	ErrParentNamesRequired = errors.New("father and mother full names are required")
)
