package domain

import "errors"

// Common domain errors
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)

// Caller resolution errors
var (
	ErrUnauthenticated        = errors.New("sign in required")
	ErrEmployeeProfileMissing = errors.New("employee profile not found")
	ErrEmployeeInactive       = errors.New("employee profile is inactive")
	ErrEmployeeAlreadyExists  = errors.New("employee profile already exists")
)

// Ledger errors
var (
	ErrCustomerNotFound = errors.New("customer not found")
)

// Account errors
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
)
