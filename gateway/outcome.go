////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package gateway

import (
	"strings"

	"gitlab.com/safesync/client/interfaces"
)

// Outcome converts an error returned by a Gateway call into the client error
// taxonomy. A *ResponseError becomes a BusinessError carrying the trimmed
// raw body; anything else becomes a TransportError wrapping the cause. A nil
// error stays nil.
func Outcome(op string, err error) error {
	if err == nil {
		return nil
	}
	if re, ok := AsResponseError(err); ok {
		return interfaces.NewBusinessError(op, strings.TrimSpace(re.Body),
			re.StatusCode)
	}
	return interfaces.NewTransportError(op, err)
}

// ReasonOutcome is Outcome, except a rejection carries Reason instead of
// the raw body.
func ReasonOutcome(op string, err error) error {
	if re, ok := AsResponseError(err); ok {
		return interfaces.NewBusinessError(op, re.Reason(), re.StatusCode)
	}
	return Outcome(op, err)
}
