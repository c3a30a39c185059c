package validators

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pariney/saree-storefront/pkg/enums"
	pkgerrors "github.com/pariney/saree-storefront/pkg/errors"
)

var validate = newValidator()

// ValidationMessenger lets a request body own the exact 400 message per field.
type ValidationMessenger interface {
	ValidationMessage(field, tag string) string
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	_ = v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return enums.OrderStatus(fl.Field().String()).IsValid()
	})
	return v
}

// DecodeJSONBody decodes and validates dest. An empty body is validated as {}.
func DecodeJSONBody(r *http.Request, dest any) error {
	defer func() {
		io.Copy(io.Discard, r.Body)
	}()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil && !errors.Is(err, io.EOF) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid request body").WithDetails(map[string]any{"error": err.Error()})
	}
	return ValidateStruct(dest)
}

// ValidateStruct runs the struct tags of dest.
func ValidateStruct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return formatValidationErrors(dest, err)
	}
	return nil
}

func formatValidationErrors(dest any, err error) *pkgerrors.Error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
	}

	messenger, _ := dest.(ValidationMessenger)
	details := map[string]string{}
	first := ""
	for _, fieldErr := range errs {
		msg := ""
		if messenger != nil {
			msg = messenger.ValidationMessage(fieldErr.Field(), fieldErr.Tag())
		}
		if msg == "" {
			msg = fmt.Sprintf("%s %s", fieldErr.Field(), validationMessage(fieldErr))
		}
		details[fieldErr.Field()] = msg
		if first == "" {
			first = msg
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, first).WithDetails(details)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "order_status":
		return "must be a valid order status"
	}
	return "is invalid"
}
