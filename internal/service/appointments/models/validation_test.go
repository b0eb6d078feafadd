package models

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func validRequest() *AppointmentRequest {
	return &AppointmentRequest{
		Title:      "Checkup",
		Notes:      ptr.Of("Bring previous results"),
		Category:   "Medical",
		StartDate:  ptr.Of("2025-11-15T10:00:00"),
		CustomerID: "123456789A",
	}
}

func TestValidate_Valid(t *testing.T) {
	input, err := validRequest().Validate()
	require.NoError(t, err)

	assert.Equal(t, "Checkup", input.Title)
	assert.Equal(t, "Medical", input.Category)
	assert.Equal(t, "2025-11-15T10:00:00", input.StartDate.String())
	assert.Equal(t, "123456789A", input.CustomerID)
	assert.Nil(t, input.Done)
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	req := &AppointmentRequest{
		Title:    "   ",
		Category: "",
	}

	_, err := req.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, []FieldError{
		{Field: "title", Message: "Title cannot be blank"},
		{Field: "category", Message: "Category cannot be blank"},
		{Field: "startDate", Message: "Start date cannot be null"},
		{Field: "customerId", Message: "Customer ID cannot be blank"},
	}, vErr.Fields)
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *AppointmentRequest)
		field   string
		message string
	}{
		{
			name:    "blank title",
			mutate:  func(r *AppointmentRequest) { r.Title = "\t" },
			field:   "title",
			message: "Title cannot be blank",
		},
		{
			name:    "blank category",
			mutate:  func(r *AppointmentRequest) { r.Category = " " },
			field:   "category",
			message: "Category cannot be blank",
		},
		{
			name:    "missing start date",
			mutate:  func(r *AppointmentRequest) { r.StartDate = nil },
			field:   "startDate",
			message: "Start date cannot be null",
		},
		{
			name:    "unparseable start date",
			mutate:  func(r *AppointmentRequest) { r.StartDate = ptr.Of("15/11/2025 10:00") },
			field:   "startDate",
			message: "Start date must be an ISO-8601 date-time",
		},
		{
			name:    "zero start date",
			mutate:  func(r *AppointmentRequest) { r.StartDate = ptr.Of("0001-01-01T00:00:00") },
			field:   "startDate",
			message: "Start date must be an ISO-8601 date-time",
		},
		{
			name:    "blank customer",
			mutate:  func(r *AppointmentRequest) { r.CustomerID = "" },
			field:   "customerId",
			message: "Customer ID cannot be blank",
		},
		{
			name:    "customer id too long",
			mutate:  func(r *AppointmentRequest) { r.CustomerID = strings.Repeat("9", 65) },
			field:   "customerId",
			message: "Customer ID must be at most 64 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := req.Validate()

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Len(t, vErr.Fields, 1)
			assert.Equal(t, tt.field, vErr.Fields[0].Field)
			assert.Equal(t, tt.message, vErr.Fields[0].Message)
		})
	}
}

func TestValidate_LongNotesAreNotRejected(t *testing.T) {
	req := validRequest()
	long := make([]byte, 1500)
	for i := range long {
		long[i] = 'n'
	}
	req.Notes = ptr.Of(string(long))

	input, err := req.Validate()
	require.NoError(t, err)
	assert.Len(t, *input.Notes, 1500)
}
