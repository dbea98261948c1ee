package auth

import "errors"

var (
	ErrIncompleteCredentials = errors.New("access and refresh tokens are both required")
	ErrNoAccessToken         = errors.New("no access token stored")
	ErrMalformedToken        = errors.New("malformed access token")
)
