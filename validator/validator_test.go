package validator

import (
	"contact-book/models"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CreateContact(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		req       models.CreateContactRequest
		wantError bool
		errorMsg  string
	}{
		{
			name: "Valid contact request",
			req: models.CreateContactRequest{
				Name:        "Alice Smith",
				PhoneNumber: "+1 (555) 010-0000",
				Email:       "alice@example.com",
			},
			wantError: false,
		},
		{
			name:      "All fields empty is allowed",
			req:       models.CreateContactRequest{},
			wantError: false,
		},
		{
			name: "Free-text phone and email are allowed",
			req: models.CreateContactRequest{
				Name:        "Bob",
				PhoneNumber: "call the front desk",
				Email:       "not really an email",
			},
			wantError: false,
		},
		{
			name: "Unicode name",
			req: models.CreateContactRequest{
				Name: "Zoë Ørsted 王",
			},
			wantError: false,
		},
		{
			name: "Name too long",
			req: models.CreateContactRequest{
				Name: strings.Repeat("a", 101),
			},
			wantError: true,
			errorMsg:  "name must be at most 100 characters",
		},
		{
			name: "Control character in name",
			req: models.CreateContactRequest{
				Name: "Eve\x00",
			},
			wantError: true,
			errorMsg:  "name must not contain control characters",
		},
		{
			name: "Newline in phone number",
			req: models.CreateContactRequest{
				Name:        "Eve",
				PhoneNumber: "555\n0100",
			},
			wantError: true,
			errorMsg:  "phone_number must not contain control characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)

			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidator_UpdateContact(t *testing.T) {
	v := New()

	err := v.Validate(models.UpdateContactRequest{
		Name:  "Carol",
		Image: strings.Repeat("p", 1025),
	})
	require.Error(t, err)

	validationErrs, ok := err.(ValidationErrors)
	require.True(t, ok)
	require.Len(t, validationErrs, 1)
	assert.Equal(t, "image", validationErrs[0].Field)
	assert.Equal(t, "max", validationErrs[0].Tag)

	assert.NoError(t, v.Validate(models.UpdateContactRequest{Name: "Carol"}))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "name", Message: "name must be at most 100 characters"},
		{Field: "email", Message: "email must be at most 254 characters"},
	}

	assert.Equal(t, "name must be at most 100 characters; email must be at most 254 characters", errs.Error())
}
