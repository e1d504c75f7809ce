////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package restlike

import "net/http"

// Message is a response received for a Request
type Message struct {
	Method    Method
	URI       URI
	RequestID string
	Status    int
	Headers   http.Header
	Content   Data
}

// OK reports whether the response carried a 2xx status.
func (m *Message) OK() bool {
	return m.Status >= 200 && m.Status < 300
}

