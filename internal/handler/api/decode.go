package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/dukerupert/vendas/internal/domain"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// errTooLarge is returned when the body exceeds MaxBodySize.
var errTooLarge = &domain.Error{Code: domain.ETOOLARGE, Message: "Corpo da requisição muito grande."}

// decodeJSON reads exactly one JSON object into dst, rejecting unknown
// fields, and runs struct validation. Decoding failures are reported with
// message; validation failures are returned as *validator.ValidationErrors
// for the caller to translate.
func decodeJSON(r *http.Request, dst interface{}, op, message string) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.WithOp(errTooLarge, op)
		}
		return &domain.Error{Code: domain.EINVALID, Op: op, Message: message, Err: err}
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return &domain.Error{Code: domain.EINVALID, Op: op, Message: message, Err: errors.New("trailing data after JSON body")}
	}

	return validate.Struct(dst)
}

// invalidBody turns validator errors into a domain.ValidationError keyed by
// JSON field name. message is what the caller sees; the fields go to the logs.
func invalidBody(err error, op, message string) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	out := domain.NewValidationError(op, verrs[0].Field(), fieldMessage(verrs[0]))
	for _, fe := range verrs[1:] {
		out = domain.AddFieldError(out, fe.Field(), fieldMessage(fe))
	}

	var ve *domain.ValidationError
	if errors.As(out, &ve) {
		ve.Summary = message
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "gt":
		return "deve ser maior que " + fe.Param()
	default:
		return "valor inválido"
	}
}

// hasFieldError reports whether err is a validation failure on field.
func hasFieldError(err error, field string) bool {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false
	}
	for _, fe := range verrs {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
