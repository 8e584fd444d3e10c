package pocketbuddy

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is the shared struct validator for local pre-flight checks.
var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs local validation and converts failures into the common
// taxonomy so callers never see raw validator errors.
func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(verrs))
	details := make(map[string]interface{}, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		details[fe.Field()] = fe.Tag()
	}

	return &Error{
		StatusCode: http.StatusBadRequest,
		Code:       codeValidation,
		Message:    fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", ")),
		Details:    details,
	}
}
