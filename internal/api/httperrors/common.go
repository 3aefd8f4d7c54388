package httperrors

import (
	"net/http"

	"github.com/lyralabs/watermark-service/internal/types"
)

var (
	ErrBadRequestUnsupportedDataType = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUnsupportedDataType, "The requested data_type has no watermark codec.")
	ErrBadRequestUnsupportedEncoding = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeUnsupportedEncoding, "Content must be supplied in the modality's lossless encoding.")
	ErrBadRequestContentTooSmall     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeContentTooSmall, "Content cannot carry the full watermark payload.")
	ErrBadRequestContentTooLarge     = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeContentTooLarge, "Content exceeds the configured size limit.")
	ErrBadRequestInvalidCertificate  = NewHTTPError(http.StatusBadRequest, types.PublicHTTPErrorTypeInvalidCertificate, "The provenance certificate is malformed or does not verify.")
)
