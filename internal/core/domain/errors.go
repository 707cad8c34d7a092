package domain

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden access")

	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	ErrUserNotFound           = errors.New("user not found")
	ErrUserExists             = errors.New("user already exists")
	ErrClassNotFound          = errors.New("class not found")
	ErrTeacherRequestNotFound = errors.New("teacher request not found")

	ErrInvalidID     = errors.New("invalid identifier")
	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")

	ErrPaymentFailed = errors.New("payment processor error")
)
