// Package httperrors provides the typed HTTP error payloads returned by
// every handler, mirroring RFC 7807 problem details.
package httperrors

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lyralabs/watermark-service/internal/types"
)

// HTTPError is the internal error representation carried through echo's
// error handling until it is rendered as a types.PublicHTTPError.
type HTTPError struct {
	Code           int
	Type           string
	Title          string
	Detail         string
	Internal       error
	AdditionalData map[string]interface{}
}

// NewHTTPError constructs a bare typed error.
func NewHTTPError(code int, errorType, title string) *HTTPError {
	return &HTTPError{
		Code:  code,
		Type:  errorType,
		Title: title,
	}
}

// NewHTTPErrorWithDetail constructs a typed error with a public detail
// string.
func NewHTTPErrorWithDetail(code int, errorType, title, detail string) *HTTPError {
	return &HTTPError{
		Code:   code,
		Type:   errorType,
		Title:  title,
		Detail: detail,
	}
}

// NewFromEcho converts an *echo.HTTPError into the typed representation.
func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return &HTTPError{
		Code:  e.Code,
		Type:  types.PublicHTTPErrorTypeGeneric,
		Title: fmt.Sprintf("%v", e.Message),
	}
}

func (e *HTTPError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("HTTPError %d (%s): %s: %v", e.Code, e.Type, e.Title, e.Internal)
	}
	return fmt.Sprintf("HTTPError %d (%s): %s", e.Code, e.Type, e.Title)
}

// Public renders the error as its response payload.
func (e *HTTPError) Public() *types.PublicHTTPError {
	return &types.PublicHTTPError{
		Code:   int64(e.Code),
		Type:   e.Type,
		Title:  e.Title,
		Detail: e.Detail,
	}
}

// HandlerWithConfig returns the echo HTTPErrorHandler translating internal
// error types into public payloads. Internal error details are withheld
// from 5xx responses when hideInternalDetails is set.
func HandlerWithConfig(hideInternalDetails bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *HTTPError
		switch e := err.(type) {
		case *HTTPError:
			httpErr = e
		case *echo.HTTPError:
			httpErr = NewFromEcho(e)
		default:
			httpErr = NewHTTPError(http.StatusInternalServerError, types.PublicHTTPErrorTypeGeneric, http.StatusText(http.StatusInternalServerError))
			if !hideInternalDetails {
				httpErr.Detail = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.Code)
		} else {
			err = c.JSON(httpErr.Code, httpErr.Public())
		}
		if err != nil {
			c.Logger().Error(err)
		}
	}
}
