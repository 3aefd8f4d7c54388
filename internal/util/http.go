// Package util provides the request plumbing shared by all handlers:
// payload binding with validation and the request-scoped logger.
package util

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/api/httperrors"
	"github.com/lyralabs/watermark-service/internal/types"
)

// Validatable is implemented by every payload type in internal/types.
type Validatable interface {
	Validate(formats strfmt.Registry) error
}

// BindAndValidateBody binds the JSON request body into v and runs its
// validation, translating failures into a public validation error.
func BindAndValidateBody(c echo.Context, v Validatable) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, v); err != nil {
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeValidation, "Malformed request body.", err.Error())
	}

	if err := v.Validate(strfmt.Default); err != nil {
		return httperrors.NewHTTPErrorWithDetail(http.StatusBadRequest, types.PublicHTTPErrorTypeValidation, "Request body failed validation.", err.Error())
	}

	return nil
}

// ValidateAndReturn validates the response payload before writing it,
// guarding the API contract on the way out as well.
func ValidateAndReturn(c echo.Context, code int, v Validatable) error {
	if err := v.Validate(strfmt.Default); err != nil {
		return err
	}
	return c.JSON(code, v)
}
