////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package identity

import (
	"encoding/binary"
	"strconv"

	"github.com/pkg/errors"
	"gitlab.com/xx_network/crypto/csprng"
)

const (
	placeholderKeyMin   = 10000
	placeholderKeySpan  = 90000
	placeholderKeyBytes = 8
)

// KeyProvider supplies the four public key strings published at
// registration.
type KeyProvider interface {
	GenerateKeys() ([4]string, error)
}

// PlaceholderKeys stands in for real key generation: each key is a random
// five digit number.
type PlaceholderKeys struct {
	rng csprng.Source
}

// NewPlaceholderKeys returns a PlaceholderKeys reading from the system RNG.
func NewPlaceholderKeys() *PlaceholderKeys {
	return &PlaceholderKeys{rng: csprng.NewSystemRNG()}
}

// NewPlaceholderKeysFromSource returns a PlaceholderKeys reading from rng.
func NewPlaceholderKeysFromSource(rng csprng.Source) *PlaceholderKeys {
	return &PlaceholderKeys{rng: rng}
}

// GenerateKeys returns four keys in [10000, 99999].
func (p *PlaceholderKeys) GenerateKeys() ([4]string, error) {
	var keys [4]string
	buf := make([]byte, placeholderKeyBytes)
	for i := range keys {
		if _, err := p.rng.Read(buf); err != nil {
			return [4]string{}, errors.WithMessage(err,
				"failed to read randomness for placeholder key")
		}
		n := binary.BigEndian.Uint64(buf)%placeholderKeySpan +
			placeholderKeyMin
		keys[i] = strconv.FormatUint(n, 10)
	}
	return keys, nil
}
