////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package gateway

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
	"gitlab.com/safesync/client/interfaces"
)

// RegisterRequest is the body of a register call.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	PublicKey1 string `json:"publickey1"`
	PublicKey2 string `json:"publickey2"`
	PublicKey3 string `json:"publickey3"`
	PublicKey4 string `json:"publickey4"`
}

// NewRegisterRequest builds the register body for an account.
func NewRegisterRequest(a interfaces.Account) RegisterRequest {
	return RegisterRequest{
		Username:   a.Username,
		Password:   a.Password,
		PublicKey1: a.PublicKeys[0],
		PublicKey2: a.PublicKeys[1],
		PublicKey3: a.PublicKeys[2],
		PublicKey4: a.PublicKeys[3],
	}
}

// LoginRequest is the body of a login call.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the envelope returned by login.
type LoginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *LoginData `json:"data,omitempty"`
}

// LoginData is the account summary attached to a successful login.
type LoginData struct {
	ID        FlexibleID `json:"id"`
	Username  string     `json:"username"`
	PublicKey *string    `json:"publicKey,omitempty"`
}

// AddFriendRequest is the body of a send_friend_request call.
type AddFriendRequest struct {
	SenderUsername   string `json:"sender_username"`
	ReceiverUsername string `json:"receiver_username"`
}

// RemoveFriendRequest is the body of a remove_friend call.
type RemoveFriendRequest struct {
	Username       string `json:"username"`
	FriendUsername string `json:"friendUsername"`
}

// APIUser is a directory entry as listed by friends. Friends nest
// recursively on the wire.
type APIUser struct {
	ID        FlexibleID `json:"id"`
	Username  string     `json:"username"`
	PublicKey *string    `json:"publickey,omitempty"`
	// PublicKey1 is read when publickey is absent; servers that store four
	// keys publish the first one there.
	PublicKey1 *string   `json:"publickey1,omitempty"`
	Friends    []APIUser `json:"friends,omitempty"`
}

// ToUser converts the entry to a User, keeping its own friends but dropping
// anything nested below them.
func (u APIUser) ToUser() interfaces.User {
	user := u.flat()
	if len(u.Friends) > 0 {
		user.Friends = make([]interfaces.User, 0, len(u.Friends))
		for _, f := range u.Friends {
			user.Friends = append(user.Friends, f.flat())
		}
	}
	return user
}

func (u APIUser) flat() interfaces.User {
	key := u.PublicKey
	if key == nil {
		key = u.PublicKey1
	}
	var keyCopy *string
	if key != nil {
		k := *key
		keyCopy = &k
	}
	return interfaces.User{
		ID:        string(u.ID),
		Username:  u.Username,
		PublicKey: keyCopy,
	}
}

// FlexibleID is an identifier the server may encode as a JSON string or a
// JSON number. It is always held as a string.
type FlexibleID string

// UnmarshalJSON accepts a string, a number or null.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Errorf("id is neither a string nor a number: %s",
			data)
	}
	*id = FlexibleID(n.String())
	return nil
}

// MarshalJSON writes the id as a string.
func (id FlexibleID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}
