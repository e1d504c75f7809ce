////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package catalog lists the fixed endpoint paths of the chat server and the
// event categories reported to the presentation layer.
package catalog

// Endpoint paths, relative to the server base URL. These are a fixed wire
// contract; a backend must serve all of them.
const (
	//session
	Register = "register"
	Login    = "login"
	Keys     = "keys"

	//messaging
	SendMessage = "send_message"
	Messages    = "messages"

	//friend graph
	SendFriendRequest     = "send_friend_request"
	AcceptFriendRequest   = "accept_friend_request"
	DeclineFriendRequest  = "decline_friend_request"
	RemoveFriend          = "remove_friend"
	Friends               = "friends"
	Users                 = "users"
	PendingFriendRequests = "pending_friend_requests"
)

// Query parameter names.
const (
	UsernameParam  = "username"
	SenderParam    = "sender"
	RecipientParam = "recipient"
)
