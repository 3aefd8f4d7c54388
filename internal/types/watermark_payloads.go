package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// DataTypes accepted by the embed and verify endpoints.
var DataTypes = []interface{}{"text", "image", "audio"}

// PostWatermarkPayload is the request body of POST /api/watermark.
type PostWatermarkPayload struct {
	DataType          *string  `json:"data_type"`
	Data              *string  `json:"data"`
	WatermarkStrength *float64 `json:"watermark_strength,omitempty"`
	ModelName         string   `json:"model_name,omitempty"`
}

// Validate validates PostWatermarkPayload.
func (m *PostWatermarkPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("data_type", "body", m.DataType); err != nil {
		res = append(res, err)
	} else if err := validate.Enum("data_type", "body", *m.DataType, DataTypes); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	}

	if m.WatermarkStrength != nil {
		if err := validate.Minimum("watermark_strength", "body", *m.WatermarkStrength, 0, false); err != nil {
			res = append(res, err)
		}
		if err := validate.Maximum("watermark_strength", "body", *m.WatermarkStrength, 1, false); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *PostWatermarkPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// WatermarkMetadata is the payload metadata block of a successful embed.
type WatermarkMetadata struct {
	WatermarkID            *string `json:"watermark_id"`
	EmbeddingMethod        *string `json:"embedding_method"`
	CryptographicSignature *string `json:"cryptographic_signature"`
	FingerprintHash        *string `json:"fingerprint_hash"`
	ModelName              string  `json:"model_name,omitempty"`
}

// IntegrityProof names the MAC algorithm and embed time of a response.
type IntegrityProof struct {
	Algorithm *string         `json:"algorithm"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

// WatermarkResponse is the response body of POST /api/watermark.
type WatermarkResponse struct {
	WatermarkedData   *string            `json:"watermarked_data"`
	WatermarkMetadata *WatermarkMetadata `json:"watermark_metadata"`
	IntegrityProof    *IntegrityProof    `json:"integrity_proof"`
}

// Validate validates WatermarkResponse.
func (m *WatermarkResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("watermarked_data", "body", m.WatermarkedData); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("watermark_metadata", "body", m.WatermarkMetadata); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("integrity_proof", "body", m.IntegrityProof); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *WatermarkResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *WatermarkResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *WatermarkResponse) UnmarshalBinary(b []byte) error {
	var res WatermarkResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
