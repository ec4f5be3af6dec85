// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/MKhiriev/go-identity-portal/models"
	"github.com/go-playground/validator/v10"
)

// RegistrationValidator checks [models.RegistrationPayload] values.
//
// It is built on go-playground/validator with the portal's own tags
// (notblank, emailshape, phone, ssndigits, dob) and reports JSON field names.
type RegistrationValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewRegistrationValidator returns a [Validator] for registration payloads.
func NewRegistrationValidator() Validator {
	return newRegistrationValidator(time.Now)
}

func newRegistrationValidator(now func() time.Time) *RegistrationValidator {
	v := &RegistrationValidator{
		validate: validator.New(),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// registration of these tags only fails on programmer error
	mustRegister(v.validate, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v.validate, "emailshape", func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	})
	mustRegister(v.validate, "phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	mustRegister(v.validate, "ssndigits", func(fl validator.FieldLevel) bool {
		return IsValidSSN(fl.Field().String())
	})
	mustRegister(v.validate, "dob", func(fl validator.FieldLevel) bool {
		return IsValidDOB(fl.Field().String(), v.now())
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// Validate implements [Validator]. It returns a *[ValidationError] naming
// every failing field. When fields are given, only failures among them are
// reported.
func (v *RegistrationValidator) Validate(_ context.Context, obj any, fields ...string) error {
	var payload models.RegistrationPayload
	switch value := obj.(type) {
	case models.RegistrationPayload:
		payload = value
	case *models.RegistrationPayload:
		if value == nil {
			return ErrUnsupportedType
		}
		payload = *value
	default:
		return ErrUnsupportedType
	}

	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate registration payload: %w", err)
	}

	failed := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if len(fields) > 0 && !slices.Contains(fields, fe.Field()) {
			continue
		}
		failed = append(failed, fe.Field())
	}
	if len(failed) == 0 {
		return nil
	}

	return &ValidationError{Fields: failed}
}
