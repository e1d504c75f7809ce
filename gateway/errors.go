////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package gateway

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/thedevsaddam/gojsonq"
)

// reasonFields are the body fields, in order, that may carry a
// human-readable rejection.
var reasonFields = []string{"error", "message"}

// ResponseError is a well-formed reply with a non-2xx status.
type ResponseError struct {
	Path       string
	StatusCode int
	// Body is the raw response body, untrimmed.
	Body string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s returned %d: %s", e.Path, e.StatusCode,
		strings.TrimSpace(e.Body))
}

// Reason returns the error or message field of a JSON body, or the trimmed
// raw body when neither is present.
func (e *ResponseError) Reason() string {
	if reason := jsonReason(e.Body); reason != "" {
		return reason
	}
	return strings.TrimSpace(e.Body)
}

// AsResponseError unwraps err to a *ResponseError if it holds one.
func AsResponseError(err error) (*ResponseError, bool) {
	var re *ResponseError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// jsonReason returns the first non-empty string among reasonFields. A body
// that is not a JSON object yields "".
func jsonReason(body string) string {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return ""
	}
	for _, field := range reasonFields {
		// gojsonq keeps query state, so each lookup gets a fresh instance
		jq := gojsonq.New().FromString(trimmed)
		if jq.Error() != nil {
			return ""
		}
		if s, ok := jq.Find(field).(string); ok && s != "" {
			return s
		}
	}
	return ""
}
