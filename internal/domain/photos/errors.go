package photos

import "errors"

var (
	ErrPhotoNotFound    = errors.New("photo not found")
	ErrChildNotFound    = errors.New("child not found")
	ErrDataRequired     = errors.New("photo data is required")
	ErrMimeTypeRequired = errors.New("photo mime type is required")
)
