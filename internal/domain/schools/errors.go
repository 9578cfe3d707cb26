package schools

import "errors"

var (
	ErrSchoolNotFound    = errors.New("school not found")
	ErrNameRequired      = errors.New("school name is required")
	ErrNameTaken         = errors.New("school name already exists")
	ErrSchoolHasChildren = errors.New("school still has registered children")
)
