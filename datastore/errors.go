package datastore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
)

// APIError is the error body returned by the REST interface.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("data store error %d (%s): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("data store error %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return errors.ErrMutationFailed
}

const maxErrorBody = 64 << 10

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}
	if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = string(raw)
	}
	return apiErr
}
