package types

import (
	"context"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
)

// HealthResponse is the response body of GET /health. The mode and registry
// fields advertise the stateless design contract.
type HealthResponse struct {
	Status   string `json:"status"`
	Mode     string `json:"mode"`
	Registry string `json:"registry"`
}

// Validate validates HealthResponse.
func (m *HealthResponse) Validate(formats strfmt.Registry) error {
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *HealthResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *HealthResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *HealthResponse) UnmarshalBinary(b []byte) error {
	var res HealthResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
