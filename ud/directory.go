////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package ud is the local user directory: the last fetched list of every
// username and the candidate search over it.
package ud

import (
	"strings"
	"sync"

	"github.com/golang-collections/collections/set"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/interfaces"
)

// Directory holds the full username listing in server order.
type Directory struct {
	usernames []string
	mux       sync.RWMutex
}

// NewDirectory returns an empty Directory.
func NewDirectory() *Directory {
	return &Directory{}
}

// Replace swaps in a freshly fetched listing.
func (d *Directory) Replace(usernames []string) {
	cp := make([]string, len(usernames))
	copy(cp, usernames)

	d.mux.Lock()
	d.usernames = cp
	d.mux.Unlock()
	jww.DEBUG.Printf("[UD] Directory now holds %d usernames", len(cp))
}

// Usernames returns a copy of the listing.
func (d *Directory) Usernames() []string {
	d.mux.RLock()
	defer d.mux.RUnlock()
	cp := make([]string, len(d.usernames))
	copy(cp, d.usernames)
	return cp
}

// Len returns the size of the listing.
func (d *Directory) Len() int {
	d.mux.RLock()
	defer d.mux.RUnlock()
	return len(d.usernames)
}

// Search returns every username containing query, case-insensitively, in
// directory order. self is never returned, nor is any name in exclude. An
// empty query matches everything. Results carry no ID and no public key.
func (d *Directory) Search(query, self string,
	exclude ...string) []interfaces.User {
	skip := set.New()
	skip.Insert(self)
	for _, name := range exclude {
		skip.Insert(name)
	}

	needle := strings.ToLower(query)

	d.mux.RLock()
	defer d.mux.RUnlock()

	results := make([]interfaces.User, 0, len(d.usernames))
	for _, name := range d.usernames {
		if skip.Has(name) {
			continue
		}
		if !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		results = append(results, interfaces.NewUser(name))
	}
	return results
}
