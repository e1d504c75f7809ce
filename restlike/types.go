////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package restlike is a thin REST client: typed methods and paths, paced
// requests and a response Message that keeps the raw body.
package restlike

import "net/http"

// URI defines the destination endpoint of a Request, relative to the base
// URL of the HTTPRequest
type URI string

// Data provides a generic structure for data sent with a Request or received
// in a Message. The encoding is up to the caller; the gateway uses JSON.
type Data []byte

// Method defines the possible Request types
type Method uint32

const (
	// Undefined default value
	Undefined Method = iota
	// Get retrieve an existing resource.
	Get
	// Post creates a new resource.
	Post
)

// methodStrings is a map of Method values back to their constant names for
// printing
var methodStrings = map[Method]string{
	Undefined: "undefined",
	Get:       "get",
	Post:      "post",
}

// httpMethods maps Method values to the verbs sent on the wire
var httpMethods = map[Method]string{
	Get:  http.MethodGet,
	Post: http.MethodPost,
}

// String returns the Method as a human-readable name.
func (m Method) String() string {
	if methodStr, ok := methodStrings[m]; ok {
		return methodStr
	}
	return methodStrings[Undefined]
}
