// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-identity-portal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func validPayload() models.RegistrationPayload {
	return models.RegistrationPayload{
		FirstName:         "Jane",
		LastName:          "Doe",
		Email:             "jane@example.com",
		Phone:             "555-010-0100",
		Relationship:      "Spouse",
		ServiceMemberName: "John Doe",
		Branch:            "Army",
		DOB:               "1990-03-15",
		SSN:               "123-45-6789",
		Street:            "1 Main St",
		City:              "Springfield",
		State:             "IL",
		Zip:               "62701",
		IDFront:           &models.IdentityDocument{Name: "front.png", Size: 1024, Type: "image/png"},
	}
}

func failedFields(t *testing.T, err error) []string {
	t.Helper()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected *ValidationError, got %v", err)
	return vErr.Fields
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestRegistrationValidator_ValidPayload(t *testing.T) {
	v := newRegistrationValidator(fixedNow)

	require.NoError(t, v.Validate(context.Background(), validPayload()))

	p := validPayload()
	require.NoError(t, v.Validate(context.Background(), &p))
}

func TestRegistrationValidator_ReportsEveryFailingField(t *testing.T) {
	v := newRegistrationValidator(fixedNow)

	err := v.Validate(context.Background(), models.RegistrationPayload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSubmission)

	assert.Equal(t, []string{
		"firstName", "lastName", "email", "phone", "relationship",
		"serviceMemberName", "branch", "dob", "ssn", "street",
		"city", "state", "zip", "idFront",
	}, failedFields(t, err))
}

func TestRegistrationValidator_SingleFieldFailures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.RegistrationPayload)
		want   []string
	}{
		{"blank first name", func(p *models.RegistrationPayload) { p.FirstName = "   " }, []string{"firstName"}},
		{"bad email", func(p *models.RegistrationPayload) { p.Email = "jane.example.com" }, []string{"email"}},
		{"short phone", func(p *models.RegistrationPayload) { p.Phone = "12345" }, []string{"phone"}},
		{"five digit ssn", func(p *models.RegistrationPayload) { p.SSN = "12345" }, []string{"ssn"}},
		{"future dob", func(p *models.RegistrationPayload) { p.DOB = "2027-01-01" }, []string{"dob"}},
		{"missing front id", func(p *models.RegistrationPayload) { p.IDFront = nil }, []string{"idFront"}},
		{"email and zip", func(p *models.RegistrationPayload) { p.Email = ""; p.Zip = "\t" }, []string{"email", "zip"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPayload()
			tt.mutate(&p)

			err := newRegistrationValidator(fixedNow).Validate(context.Background(), p)
			assert.Equal(t, tt.want, failedFields(t, err))
		})
	}
}

func TestRegistrationValidator_LastFourSSNAccepted(t *testing.T) {
	p := validPayload()
	p.SSN = "6789"
	assert.NoError(t, newRegistrationValidator(fixedNow).Validate(context.Background(), p))
}

func TestRegistrationValidator_OptionalFieldsIgnored(t *testing.T) {
	p := validPayload()
	p.Rank = ""
	p.IDBack = nil
	p.ConnectionDescription = "   "
	assert.NoError(t, newRegistrationValidator(fixedNow).Validate(context.Background(), p))
}

func TestRegistrationValidator_FieldScope(t *testing.T) {
	p := validPayload()
	p.Email = "bad"
	p.Phone = "bad"

	v := newRegistrationValidator(fixedNow)

	err := v.Validate(context.Background(), p, "phone")
	assert.Equal(t, []string{"phone"}, failedFields(t, err))

	assert.NoError(t, v.Validate(context.Background(), p, "firstName"))
}

func TestRegistrationValidator_UnsupportedType(t *testing.T) {
	v := NewRegistrationValidator()

	assert.ErrorIs(t, v.Validate(context.Background(), "payload"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(context.Background(), (*models.RegistrationPayload)(nil)), ErrUnsupportedType)
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []string{"email", "ssn"}}
	assert.Equal(t, "invalid submission: email, ssn", err.Error())
}
