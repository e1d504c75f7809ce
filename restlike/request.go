////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package restlike

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/ratelimit"
)

// RequestIDHeader carries a per-request identifier for server-side tracing.
const RequestIDHeader = "X-Request-Id"

// HTTPRequest allows for making REST-like requests against a base URL.
// Can be used as stateful or declared inline without state; a nil Client
// uses http.DefaultClient and a nil Limiter does not pace requests.
type HTTPRequest struct {
	BaseURL string
	Client  *http.Client
	Limiter ratelimit.Limiter
}

// NewHTTPRequest builds an HTTPRequest that sends at most requestsPerSecond
// requests each second. Zero or less disables pacing.
func NewHTTPRequest(baseURL string, client *http.Client,
	requestsPerSecond int) *HTTPRequest {
	var limiter ratelimit.Limiter
	if requestsPerSecond > 0 {
		limiter = ratelimit.New(requestsPerSecond, ratelimit.WithoutSlack)
	} else {
		limiter = ratelimit.NewUnlimited()
	}
	return &HTTPRequest{
		BaseURL: baseURL,
		Client:  client,
		Limiter: limiter,
	}
}

// Request sends content to the given URI using the given Method and blocks
// until the Message is returned. Any status code is a valid Message; only
// failures to reach the server or read its reply are errors.
func (r *HTTPRequest) Request(ctx context.Context, method Method, path URI,
	query url.Values, content Data) (*Message, error) {
	verb, ok := httpMethods[method]
	if !ok {
		return nil, errors.Errorf("unsupported method %s", method)
	}

	target := r.buildURL(path, query)

	var body io.Reader
	if content != nil {
		body = bytes.NewReader(content)
	}
	req, err := http.NewRequestWithContext(ctx, verb, target, body)
	if err != nil {
		return nil, errors.WithMessagef(err,
			"failed to build %s request to %s", method, path)
	}

	requestID := uuid.New().String()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if content != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if r.Limiter != nil {
		r.Limiter.Take()
	}

	jww.TRACE.Printf("[REST] %s %s (%s)", verb, target, requestID)

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "%s %s failed", verb, path)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			jww.WARN.Printf("[REST] Failed to close response body "+
				"for %s: %+v", requestID, closeErr)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessagef(err,
			"failed to read response to %s %s", verb, path)
	}

	jww.TRACE.Printf("[REST] %s %s (%s) -> %d, %d bytes", verb, target,
		requestID, resp.StatusCode, len(respBody))

	return &Message{
		Method:    method,
		URI:       path,
		RequestID: requestID,
		Status:    resp.StatusCode,
		Headers:   resp.Header,
		Content:   respBody,
	}, nil
}

func (r *HTTPRequest) buildURL(path URI, query url.Values) string {
	target := strings.TrimRight(r.BaseURL, "/") + "/" +
		strings.TrimLeft(string(path), "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}
