package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
)

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

const maxBodyBytes = 1 << 20

// DecodeJSON decodes a JSON request body into target. Unknown properties and
// type mismatches are reported as validation errors. An empty body decodes
// as an empty object so field validation can report what is missing.
func DecodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return NewError(ErrValidation, "Request body must contain a single JSON object")
	}
	return nil
}

const unknownFieldPrefix = "json: unknown field "

func decodeError(err error) error {
	var (
		typeErr   *json.UnmarshalTypeError
		syntaxErr *json.SyntaxError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &typeErr):
		return Validation(typeMessage(typeErr))
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return NewError(ErrValidation, "Malformed JSON request body")
	case errors.As(err, &maxErr):
		return NewError(ErrValidation, "Request body too large")
	case strings.HasPrefix(err.Error(), unknownFieldPrefix):
		field := strings.Trim(strings.TrimPrefix(err.Error(), unknownFieldPrefix), `"`)
		return Validation(fmt.Sprintf("property %s should not exist", field))
	default:
		return NewError(ErrValidation, "Malformed JSON request body")
	}
}

func typeMessage(err *json.UnmarshalTypeError) string {
	field := err.Field
	if field == "" {
		return "request body must be a JSON object"
	}
	switch err.Type.Kind() {
	case reflect.String:
		return field + " must be a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int32, reflect.Int64:
		return field + " must be a number conforming to the specified constraints"
	case reflect.Bool:
		return field + " must be a boolean value"
	default:
		return field + " has an invalid type"
	}
}
