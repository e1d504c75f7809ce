////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package gateway

import (
	"encoding/json"
	"time"
)

// Params configures the HTTP gateway.
type Params struct {
	// BaseURL is the server root every endpoint path is appended to.
	BaseURL string

	// Timeout bounds a single request, including reading the reply. Zero
	// means no limit.
	Timeout time.Duration

	// RequestsPerSecond paces outgoing requests. Zero or less disables
	// pacing.
	RequestsPerSecond int
}

// GetDefaultParams returns a Params object containing the
// default parameters.
func GetDefaultParams() Params {
	return Params{
		BaseURL:           "http://localhost:8080",
		Timeout:           30 * time.Second,
		RequestsPerSecond: 0,
	}
}

// ParseParameters returns the default Params, or override with given
// parameters, if set.
func ParseParameters(paramsJSON string) (Params, error) {
	p := GetDefaultParams()
	if len(paramsJSON) > 0 {
		err := json.Unmarshal([]byte(paramsJSON), &p)
		if err != nil {
			return Params{}, err
		}
	}
	return p, nil
}
