package models

// RegistrationPayload is the applicant submission accepted by the register
// endpoint. DOB and SSN arrive in plaintext and are encrypted before the
// record is built.
//
// The validate tags are evaluated in field order, which is also the order of
// field names reported back to the applicant.
type RegistrationPayload struct {
	FirstName         string `json:"firstName" validate:"notblank"`
	LastName          string `json:"lastName" validate:"notblank"`
	Email             string `json:"email" validate:"emailshape"`
	Phone             string `json:"phone" validate:"phone"`
	Relationship      string `json:"relationship" validate:"notblank"`
	ServiceMemberName string `json:"serviceMemberName" validate:"notblank"`
	Branch            string `json:"branch" validate:"notblank"`
	DOB               string `json:"dob" validate:"dob"`
	SSN               string `json:"ssn" validate:"ssndigits"`
	Street            string `json:"street" validate:"notblank"`
	City              string `json:"city" validate:"notblank"`
	State             string `json:"state" validate:"notblank"`
	Zip               string `json:"zip" validate:"notblank"`

	IDFront *IdentityDocument `json:"idFront" validate:"required"`
	IDBack  *IdentityDocument `json:"idBack,omitempty"`

	Rank                  string `json:"rank,omitempty"`
	Unit                  string `json:"unit,omitempty"`
	Region                string `json:"region,omitempty"`
	ConnectionDescription string `json:"connectionDescription,omitempty"`
}

// AdminUpdatePayload changes the status of a request and, when InfoRequired
// is present, its info-required flag.
type AdminUpdatePayload struct {
	RequestID    string         `json:"requestId"`
	Status       IdentityStatus `json:"status"`
	InfoRequired *bool          `json:"infoRequired,omitempty"`
}

// AdminListQuery holds the raw filters of the admin list endpoint.
type AdminListQuery struct {
	Status   IdentityStatus
	Query    string
	Page     int
	PageSize int
}

// AdminLoginPayload is the body of the admin login endpoint.
type AdminLoginPayload struct {
	Key string `json:"key"`
}

// PresignRequest asks for a presigned upload URL.
type PresignRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}
