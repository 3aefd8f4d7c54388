package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-openapi/strfmt"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lyralabs/watermark-service/internal/api"
	"github.com/lyralabs/watermark-service/internal/api/httperrors"
	"github.com/lyralabs/watermark-service/internal/types"
)

// PerformRequest runs one request through the server's full middleware and
// routing stack. A non-nil body is sent as JSON.
func PerformRequest(t *testing.T, s *api.Server, method string, path string, body interface{}, headers http.Header) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		bodyReader = bytes.NewReader(payload)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res := httptest.NewRecorder()
	s.Echo.ServeHTTP(res, req)

	return res
}

// ParseResponseBody decodes the recorded JSON response into v.
func ParseResponseBody(t *testing.T, res *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), v), "failed to parse response body: %s", res.Body.String())
}

// ParseResponseAndValidate decodes the response and runs the payload's own
// validation against it.
func ParseResponseAndValidate(t *testing.T, res *httptest.ResponseRecorder, v interface {
	Validate(strfmt.Registry) error
}) {
	t.Helper()
	ParseResponseBody(t, res, v)
	require.NoError(t, v.Validate(strfmt.Default))
}

// RequireHTTPError asserts that the response carries the given typed error.
func RequireHTTPError(t *testing.T, res *httptest.ResponseRecorder, httpError *httperrors.HTTPError) {
	t.Helper()

	require.Equal(t, httpError.Code, res.Code)

	var body types.PublicHTTPError
	ParseResponseBody(t, res, &body)

	require.Equal(t, httpError.Type, body.Type)
	require.Equal(t, httpError.Title, body.Title)
}
