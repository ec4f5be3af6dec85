package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/service"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/internal/validators"
	"github.com/MKhiriev/go-identity-portal/models"
)

// Messages returned to API callers.
const (
	MessageInvalidSubmission = "Invalid submission. Please review required fields."
	MessageMissingRequestID  = "Missing requestId."
	MessageNotFound          = "Request not found."
	MessageMissingUpdate     = "Missing requestId or status."
	MessageUnknownStatus     = "Unknown status."
	MessageUnauthorized      = "Unauthorized."
	MessageAuthorized        = "Authorized."
	MessageLoggedOut         = "Logged out."
	MessageUploadsOff        = "R2 upload not configured."
	MessageMissingUpload     = "Missing upload metadata."
	MessageUploadOK          = "R2 upload ok."
	MessageUploadFailed      = "R2 upload failed."
	MessageInvalidJSON       = "Invalid JSON was passed."
	MessageTooManyRequests   = "Too many requests."
	MessageInternalError     = "Internal server error."
)

var errorStatusMap = map[error]int{
	validators.ErrInvalidSubmission: http.StatusBadRequest,

	service.ErrMissingRequestID:      http.StatusBadRequest,
	service.ErrMissingUpdateFields:   http.StatusBadRequest,
	service.ErrUnknownStatus:         http.StatusBadRequest,
	service.ErrUploadsNotConfigured:  http.StatusBadRequest,
	service.ErrMissingUploadMetadata: http.StatusBadRequest,
	service.ErrUnauthorized:          http.StatusUnauthorized,
	service.ErrUploadCheckFailed:     http.StatusInternalServerError,

	store.ErrIdentityRequestNotFound: http.StatusNotFound,
	store.ErrPersisting:              http.StatusInternalServerError,
	store.ErrBuildingSQLQuery:        http.StatusInternalServerError,
	store.ErrExecutingQuery:          http.StatusInternalServerError,
	store.ErrExecutingStatement:      http.StatusInternalServerError,
	store.ErrScanningRow:             http.StatusInternalServerError,
	store.ErrScanningRows:            http.StatusInternalServerError,

	crypto.ErrConfiguration: http.StatusInternalServerError,
	crypto.ErrDecoding:      http.StatusInternalServerError,
	crypto.ErrIntegrity:     http.StatusInternalServerError,
}

var errorMessageMap = map[error]string{
	validators.ErrInvalidSubmission:  MessageInvalidSubmission,
	service.ErrMissingRequestID:      MessageMissingRequestID,
	service.ErrMissingUpdateFields:   MessageMissingUpdate,
	service.ErrUnknownStatus:         MessageUnknownStatus,
	service.ErrUploadsNotConfigured:  MessageUploadsOff,
	service.ErrMissingUploadMetadata: MessageMissingUpload,
	service.ErrUnauthorized:          MessageUnauthorized,
	service.ErrUploadCheckFailed:     MessageUploadFailed,
	store.ErrIdentityRequestNotFound: MessageNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}
	return MessageInternalError
}

// writeError answers with the status and public message mapped from err.
// Validation errors also list the failing field names.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	body := models.MessageResponse{Message: messageFromError(err)}

	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		body.Errors = vErr.Fields
	}

	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Int("status", status).Msg("request failed")
	}

	utils.WriteJSON(w, body, status)
}

func writeMessage(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.MessageResponse{Message: message}, status)
}
