package shared

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/interbanking/interbanking-api/internal/platform/clock"
)

var (
	cuitPattern         = regexp.MustCompile(`^\d{11}$`)
	calendarDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// NewValidator returns a validator that reports JSON field names and knows
// the custom tags:
//
//	cuit          exactly 11 ASCII digits
//	datefmt       YYYY-MM-DD shape
//	calendardate  YYYY-MM-DD naming an existing day
//	isodate       ISO-8601 date or date-time
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("cuit", func(fl validator.FieldLevel) bool {
		return cuitPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("datefmt", func(fl validator.FieldLevel) bool {
		return calendarDatePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := clock.ParseCalendarDate(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := clock.ParseISO(fl.Field().String())
		return err == nil
	})
	return v
}

// FieldMessages maps "field.tag" to a client-facing message.
type FieldMessages map[string]string

// ValidationMessages flattens validator errors into readable messages, one
// per failing field, using msgs for overrides. It returns nil when err is
// not a validator error.
func ValidationMessages(err error, msgs FieldMessages) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := msgs[fe.Field()+"."+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, defaultMessage(fe))
	}
	return out
}

func defaultMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " should not be empty"
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", field, fe.Param())
	case "gt":
		if fe.Param() == "0" {
			return field + " must be a positive number"
		}
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "isodate":
		return field + " must be a valid ISO 8601 date string"
	default:
		return field + " is invalid"
	}
}
