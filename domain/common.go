package domain

import (
	"fmt"
)

const (
	RoleUser = "user"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"

	ErrParseUUID     = fmt.Errorf("%w: id: must be a valid UUID", ErrValidation)
	ErrTokenNotFound = fmt.Errorf("%w: token not found", ErrForbidden)
	ErrTokenInvalid  = fmt.Errorf("%w: token invalid", ErrForbidden)
	ErrTokenExpired  = fmt.Errorf("%w: token expired", ErrForbidden)
)
