////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package gateway is the remote API boundary of the client. The Gateway
// interface is the only capability the session core depends on; the HTTP
// implementation speaks the fixed wire contract listed in catalog.
//
// Every method returns a *ResponseError for a non-2xx reply and a plain
// wrapped error when the server could not be reached or its reply could not
// be decoded.
package gateway

import (
	"context"

	"gitlab.com/safesync/client/interfaces"
)

// Gateway exposes the typed remote operations.
type Gateway interface {
	// Register creates an account.
	Register(ctx context.Context, req RegisterRequest) error

	// Login checks credentials. Any 2xx reply is returned as a
	// LoginResponse, including one that reports success as false.
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)

	// GetPublicKey returns the published key of username.
	GetPublicKey(ctx context.Context, username string) (string, error)

	// SendMessage delivers one message.
	SendMessage(ctx context.Context, msg interfaces.Message) error

	// GetMessages returns the full transcript between sender and recipient
	// in server order.
	GetMessages(ctx context.Context, sender, recipient string) (
		[]interfaces.Message, error)

	// SendFriendRequest opens a pending request.
	SendFriendRequest(ctx context.Context, req AddFriendRequest) error

	// AcceptFriendRequest resolves a pending request into a friendship.
	AcceptFriendRequest(ctx context.Context,
		req interfaces.FriendRequest) error

	// DeclineFriendRequest resolves a pending request without a friendship.
	DeclineFriendRequest(ctx context.Context,
		req interfaces.FriendRequest) error

	// RemoveFriend deletes a friendship.
	RemoveFriend(ctx context.Context, req RemoveFriendRequest) error

	// GetFriends lists the friends of username.
	GetFriends(ctx context.Context, username string) ([]APIUser, error)

	// GetAllUsernames lists the whole directory.
	GetAllUsernames(ctx context.Context) ([]string, error)

	// GetPendingRequests lists the requests waiting on username.
	GetPendingRequests(ctx context.Context, username string) (
		[]interfaces.FriendRequest, error)
}
