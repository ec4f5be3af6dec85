package models

import "time"

// MessageResponse is the body of every error response and of simple
// acknowledgements. Errors lists failing field names on validation errors.
type MessageResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// RegistrationResponse is returned after a successful submission.
type RegistrationResponse struct {
	RequestID string         `json:"requestId"`
	Status    IdentityStatus `json:"status"`
	Message   string         `json:"message"`
}

// StatusResponse is the applicant-facing view of a request.
type StatusResponse struct {
	RequestID string         `json:"requestId"`
	Status    IdentityStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Message   string         `json:"message"`
}

// AdminListResponse is one page of masked records.
type AdminListResponse struct {
	Records  []AdminRecord `json:"records"`
	Total    int           `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"pageSize"`
}

// AdminRecord is the redacted staff view of an IdentityRequest.
type AdminRecord struct {
	RequestID     string             `json:"requestId"`
	Status        IdentityStatus     `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	InfoRequired  bool               `json:"infoRequired"`
	Applicant     PersonalInfo       `json:"applicant"`
	Relationship  string             `json:"relationship"`
	ServiceMember AdminServiceMember `json:"serviceMember"`
	Identity      MaskedIdentity     `json:"identity"`
	Address       Address            `json:"address"`
}

// AdminServiceMember is the subset of ServiceMemberInfo shown to staff.
type AdminServiceMember struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
}

// MaskedIdentity holds display-only masks of the sensitive fields.
type MaskedIdentity struct {
	DOB string `json:"dob"`
	SSN string `json:"ssn"`
}

// AdminUpdateResponse echoes the applied update.
type AdminUpdateResponse struct {
	RequestID    string         `json:"requestId"`
	Status       IdentityStatus `json:"status"`
	InfoRequired bool           `json:"infoRequired"`
	Message      string         `json:"message"`
}

// PresignResponse carries a presigned PUT URL for an ID image.
type PresignResponse struct {
	URL       string  `json:"url"`
	Key       string  `json:"key"`
	PublicURL *string `json:"publicUrl"`
}

// EnvCheckResponse lists missing object storage variables.
type EnvCheckResponse struct {
	Missing []string `json:"missing"`
	OK      bool     `json:"ok"`
}
