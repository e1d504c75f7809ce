////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package interfaces holds the data types and errors shared between the
// session, friend graph and messaging modules. Usernames are the only
// cross-reference key; numeric ids only appear on friend requests.
package interfaces

import "fmt"

// Account is a registered identity as submitted at registration. It is never
// edited after creation.
type Account struct {
	Username   string
	Password   string
	PublicKeys [4]string
}

// User is a directory entry. PublicKey is nil when the context it was fetched
// from does not resolve keys (raw search results, for example).
type User struct {
	ID        string
	Username  string
	PublicKey *string
	// Friends is populated one level deep when the user came from a friend
	// listing; the entries themselves carry no Friends.
	Friends []User
}

// NewUser returns a User with no resolved key.
func NewUser(username string) User {
	return User{Username: username}
}

// Equal reports whether u and o are the same value, public key included.
// Nested friends are not compared.
func (u User) Equal(o User) bool {
	if u.ID != o.ID || u.Username != o.Username {
		return false
	}
	if u.PublicKey == nil || o.PublicKey == nil {
		return u.PublicKey == nil && o.PublicKey == nil
	}
	return *u.PublicKey == *o.PublicKey
}

// String prints the user without its key.
func (u User) String() string {
	return fmt.Sprintf("User{%s, %s}", u.ID, u.Username)
}
