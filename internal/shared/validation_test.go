package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	CUIT   string   `json:"cuit" validate:"required,cuit"`
	Kind   string   `json:"kind" validate:"required,oneof=sme corporate"`
	Day    string   `json:"day" validate:"required,datefmt,calendardate"`
	When   string   `json:"when" validate:"required,isodate"`
	Amount *float64 `json:"amount" validate:"required,gt=0"`
}

func TestValidatorCustomTags(t *testing.T) {
	v := NewValidator()
	amount := 10.5

	ok := sample{CUIT: "20333444555", Kind: "sme", Day: "2025-11-14", When: "2025-11-14T10:00:00Z", Amount: &amount}
	require.NoError(t, v.Struct(ok))

	zero := 0.0
	bad := sample{CUIT: "2033344455A", Kind: "ngo", Day: "2025-02-30", When: "yesterday", Amount: &zero}
	msgs := ValidationMessages(v.Struct(bad), FieldMessages{"cuit.cuit": "CUIT must be 11 digits"})
	assert.Equal(t, []string{
		"CUIT must be 11 digits",
		"kind must be one of the following values: sme, corporate",
		"day is invalid",
		"when must be a valid ISO 8601 date string",
		"amount must be a positive number",
	}, msgs)
}

func TestValidatorRequiredUsesJSONNames(t *testing.T) {
	msgs := ValidationMessages(NewValidator().Struct(sample{}), nil)
	assert.Equal(t, []string{
		"cuit should not be empty",
		"kind should not be empty",
		"day should not be empty",
		"when should not be empty",
		"amount should not be empty",
	}, msgs)
}

func TestValidationMessagesIgnoresOtherErrors(t *testing.T) {
	assert.Nil(t, ValidationMessages(errors.New("x"), nil))
}
