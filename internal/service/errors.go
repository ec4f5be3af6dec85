package service

import "errors"

var (
	ErrMissingRequestID    = errors.New("missing request id")
	ErrMissingUpdateFields = errors.New("missing request id or status")
	ErrUnknownStatus       = errors.New("unknown status")

	ErrUnauthorized        = errors.New("unauthorized")
	ErrTokenCreationFailed = errors.New("token creation failed")

	ErrUploadsNotConfigured  = errors.New("object storage is not configured")
	ErrMissingUploadMetadata = errors.New("missing upload metadata")
	ErrUploadCheckFailed     = errors.New("object storage check failed")

	ErrEncryptingSensitiveData = errors.New("error encrypting sensitive data")
	ErrSavingIdentityRequest   = errors.New("error saving identity request")
)
