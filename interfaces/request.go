////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package interfaces

import "fmt"

// FriendRequest is a pending, directional proposal to become friends. The id
// is assigned by the server and is never reused once the request resolves.
type FriendRequest struct {
	ID               int64  `json:"id"`
	SenderUsername   string `json:"sender_username"`
	ReceiverUsername string `json:"receiver_username"`
}

// PendingRequest is the reduced shape a presentation layer may hold for a
// request it displays. The receiver can be missing; Canonical fills it in.
type PendingRequest struct {
	ID               int64
	SenderUsername   string
	ReceiverUsername string
}

// Pending reduces the request to its displayed shape.
func (r FriendRequest) Pending() PendingRequest {
	return PendingRequest{
		ID:               r.ID,
		SenderUsername:   r.SenderUsername,
		ReceiverUsername: r.ReceiverUsername,
	}
}

// String returns a loggable form of the request.
func (r FriendRequest) String() string {
	return fmt.Sprintf("FriendRequest{%d, %s -> %s}", r.ID,
		r.SenderUsername, r.ReceiverUsername)
}

// Canonical rebuilds the full request triple. The accept and decline
// endpoints are keyed by all three fields so the server can re-check both
// ends, so the triple is always sent even if only the id is known locally.
func (p PendingRequest) Canonical(receiver string) FriendRequest {
	return FriendRequest{
		ID:               p.ID,
		SenderUsername:   p.SenderUsername,
		ReceiverUsername: receiver,
	}
}
