package ems

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// APIError is a non-2xx answer from the backend. Error returns the message meant for the user.
type APIError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

func (e *APIError) Error() string {
	return e.Message
}

// AsAPIError unwraps err into an *APIError when it is one
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// readAPIError extracts the most specific message it can: the message or error
// field of a JSON body, then the raw body text, then the status line.
func readAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err == nil {
		if isJSON(resp.Header) {
			apiErr.Message, apiErr.ErrorCode = jsonErrorMessage(data)
		} else {
			apiErr.Message = string(data)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("API Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return apiErr
}

func jsonErrorMessage(data []byte) (message string, errorCode string) {
	var payload interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return string(data), ""
	}

	switch v := payload.(type) {
	case map[string]interface{}:
		errorCode, _ = v["errorCode"].(string)
		for _, key := range []string{"message", "error"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s, errorCode
			}
		}
		return string(data), errorCode
	case string:
		return v, ""
	case nil:
		return "", ""
	}
	return string(data), ""
}
