package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostProvenancePayload is the request body of POST /api/provenance.
type PostProvenancePayload struct {
	WatermarkID     *string `json:"watermark_id"`
	FingerprintHash *string `json:"fingerprint_hash"`
	ModelName       string  `json:"model_name,omitempty"`
}

// Validate validates PostProvenancePayload.
func (m *PostProvenancePayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("watermark_id", "body", m.WatermarkID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("fingerprint_hash", "body", m.FingerprintHash); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *PostProvenancePayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// ProvenanceCertificate is the wire form of an issued certificate and the
// request body of POST /api/provenance/verify.
type ProvenanceCertificate struct {
	CertificateID   *string         `json:"certificate_id"`
	WatermarkID     *string         `json:"watermark_id"`
	FingerprintHash *string         `json:"fingerprint_hash"`
	ModelName       string          `json:"model_name,omitempty"`
	IssuedAt        strfmt.DateTime `json:"issued_at"`
	KeyEpoch        int64           `json:"key_epoch"`
	ChainHash       *string         `json:"chain_hash"`
	Signature       *string         `json:"signature"`
}

// Validate validates ProvenanceCertificate.
func (m *ProvenanceCertificate) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("certificate_id", "body", m.CertificateID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("watermark_id", "body", m.WatermarkID); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("fingerprint_hash", "body", m.FingerprintHash); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("chain_hash", "body", m.ChainHash); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("signature", "body", m.Signature); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *ProvenanceCertificate) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *ProvenanceCertificate) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *ProvenanceCertificate) UnmarshalBinary(b []byte) error {
	var res ProvenanceCertificate
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}

// ProvenanceVerifyResponse is the response body of POST
// /api/provenance/verify.
type ProvenanceVerifyResponse struct {
	Valid    *bool `json:"valid"`
	KeyEpoch int64 `json:"key_epoch"`
}

// Validate validates ProvenanceVerifyResponse.
func (m *ProvenanceVerifyResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("valid", "body", m.Valid); err != nil {
		return err
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *ProvenanceVerifyResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *ProvenanceVerifyResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *ProvenanceVerifyResponse) UnmarshalBinary(b []byte) error {
	var res ProvenanceVerifyResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
