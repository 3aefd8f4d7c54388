package types

import (
	"context"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
)

// PostVerifyPayload is the request body of POST /api/verify.
type PostVerifyPayload struct {
	DataType  *string `json:"data_type"`
	Data      *string `json:"data"`
	ModelName string  `json:"model_name,omitempty"`
}

// Validate validates PostVerifyPayload.
func (m *PostVerifyPayload) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("data_type", "body", m.DataType); err != nil {
		res = append(res, err)
	} else if err := validate.Enum("data_type", "body", *m.DataType, DataTypes); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("data", "body", m.Data); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *PostVerifyPayload) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// VerificationResult is the headline verdict block.
type VerificationResult struct {
	WatermarkDetected  *bool    `json:"watermark_detected"`
	ConfidenceScore    *float64 `json:"confidence_score"`
	MatchedWatermarkID string   `json:"matched_watermark_id,omitempty"`
	ModelName          string   `json:"model_name,omitempty"`
}

// ForensicDetails is the channel-level evidence block.
type ForensicDetails struct {
	SignatureValid   *bool    `json:"signature_valid"`
	TamperDetected   *bool    `json:"tamper_detected"`
	StatisticalScore *float64 `json:"statistical_score"`
}

// VerifyResponse is the response body of POST /api/verify.
type VerifyResponse struct {
	VerificationResult *VerificationResult `json:"verification_result"`
	ForensicDetails    *ForensicDetails    `json:"forensic_details"`
	AnalysisTimestamp  strfmt.DateTime     `json:"analysis_timestamp"`
}

// Validate validates VerifyResponse.
func (m *VerifyResponse) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("verification_result", "body", m.VerificationResult); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("forensic_details", "body", m.ForensicDetails); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}
	return nil
}

// ContextValidate validates this payload based on context it is used.
func (m *VerifyResponse) ContextValidate(ctx context.Context, formats strfmt.Registry) error {
	return nil
}

// MarshalBinary interface implementation.
func (m *VerifyResponse) MarshalBinary() ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return swag.WriteJSON(m)
}

// UnmarshalBinary interface implementation.
func (m *VerifyResponse) UnmarshalBinary(b []byte) error {
	var res VerifyResponse
	if err := swag.ReadJSON(b, &res); err != nil {
		return err
	}
	*m = res
	return nil
}
