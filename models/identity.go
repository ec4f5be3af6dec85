// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// IdentityStatus is the review state of an identity request.
type IdentityStatus string

const (
	StatusPending  IdentityStatus = "PENDING"
	StatusApproved IdentityStatus = "APPROVED"
	StatusRejected IdentityStatus = "REJECTED"
)

// IsValid reports whether s is one of the known statuses.
func (s IdentityStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// IdentityRequest is the persisted record of a single verification request.
//
// Sensitive holds ciphertext only. Plaintext SSN and DOB never reach this
// structure, so it is safe to serialize it into any store backend.
type IdentityRequest struct {
	// RequestID is assigned once at creation ("SCF-" + UUID) and never reused.
	RequestID string `json:"requestId"`

	// Status starts at PENDING and is changed by the verifier or by staff.
	Status IdentityStatus `json:"status"`

	// InfoRequired is independent of Status. It marks requests that need
	// additional documentation from the applicant.
	InfoRequired bool `json:"infoRequired"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Personal      PersonalInfo      `json:"personal"`
	Relationship  RelationshipInfo  `json:"relationship"`
	ServiceMember ServiceMemberInfo `json:"serviceMember"`
	Address       Address           `json:"address"`
	Sensitive     SensitiveFields   `json:"sensitive"`
	Documents     Documents         `json:"documents"`
}

// PersonalInfo is the applicant's contact information.
type PersonalInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// RelationshipInfo describes how the applicant is connected to the service member.
type RelationshipInfo struct {
	Relationship          string `json:"relationship"`
	ConnectionDescription string `json:"connectionDescription,omitempty"`
}

// ServiceMemberInfo identifies the service member the applicant wants to reach.
type ServiceMemberInfo struct {
	Name   string `json:"name"`
	Branch string `json:"branch"`
	Rank   string `json:"rank,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Region string `json:"region,omitempty"`
}

// Address is the applicant's postal address. Street is never returned to
// admin or status callers.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// SensitiveFields contains base64 AES-GCM blobs produced by the field cipher.
type SensitiveFields struct {
	EncryptedDOB string `json:"encryptedDob"`
	EncryptedSSN string `json:"encryptedSsn"`
}

// Documents references uploaded ID images. The binary content is stored in
// object storage.
type Documents struct {
	IDFront *IdentityDocument `json:"idFront"`
	IDBack  *IdentityDocument `json:"idBack,omitempty"`
}

// IdentityDocument is metadata of an uploaded file.
type IdentityDocument struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	URL  string `json:"url,omitempty"`
}
