package proxies

import "errors"

var (
	ErrProxyNotFound    = errors.New("proxy not found")
	ErrFullNameRequired = errors.New("proxy full name is required")
)
