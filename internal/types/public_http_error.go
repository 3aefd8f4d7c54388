// Package types holds the request and response payloads of the public API,
// with go-openapi based validation.
package types

import (
	"context"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// Public error type discriminators.
const (
	PublicHTTPErrorTypeGeneric             = "generic"
	PublicHTTPErrorTypeValidation          = "validation"
	PublicHTTPErrorTypeUnsupportedDataType = "unsupported_data_type"
	PublicHTTPErrorTypeUnsupportedEncoding = "unsupported_encoding"
	PublicHTTPErrorTypeContentTooSmall     = "content_too_small"
	PublicHTTPErrorTypeContentTooLarge     = "content_too_large"
	PublicHTTPErrorTypeInvalidCertificate  = "invalid_certificate"
)

// PublicHTTPError is the wire form of every error response.
type PublicHTTPError struct {
	Code   int64  `json:"code"`
	Type   string `json:"type"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Validate validates PublicHTTPError.
func (m *PublicHTTPError) Validate(formats strfmt.Registry) error {
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *PublicHTTPError) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *PublicHTTPError) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *PublicHTTPError) UnmarshalBinary(b []byte) error {
	var res PublicHTTPError
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
