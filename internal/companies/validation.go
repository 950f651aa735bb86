package companies

import (
	"github.com/go-playground/validator/v10"

	"github.com/interbanking/interbanking-api/internal/platform/httpx"
	"github.com/interbanking/interbanking-api/internal/shared"
)

var createMessages = shared.FieldMessages{
	"cuit.cuit":                 "CUIT must be 11 digits",
	"businessName.min":          "Business name must be at least 3 characters long",
	"businessName.max":          "Business name must not exceed 100 characters",
	"adhesionDate.datefmt":      "Adhesion date must be in format YYYY-MM-DD (e.g., 2025-11-13)",
	"adhesionDate.calendardate": "Adhesion date must be a valid calendar date",
}

func validateCreate(v *validator.Validate, req CreateCompanyRequest) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}
	if msgs := shared.ValidationMessages(err, createMessages); len(msgs) > 0 {
		return httpx.Validation(msgs...)
	}
	return err
}
