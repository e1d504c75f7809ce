////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package friends

import "encoding/json"

// Params configures a Controller.
type Params struct {
	// ExcludeFriendsFromSearch drops confirmed friends from Search results
	// so a friend cannot be sent a new request.
	ExcludeFriendsFromSearch bool
}

// GetDefaultParams returns a Params object containing the
// default parameters.
func GetDefaultParams() Params {
	return Params{
		ExcludeFriendsFromSearch: true,
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
