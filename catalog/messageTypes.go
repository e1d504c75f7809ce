////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package catalog

// Event categories.
const (
	SessionCategory   = "Session"
	FriendsCategory   = "Friends"
	MessagingCategory = "Messaging"
)

// Event types. Details carry the usernames involved.
const (
	/*session*/

	// Registered - an account was created and the session established.
	Registered = "Registered"
	// LoggedIn - a login succeeded and the session was written.
	LoggedIn = "LoggedIn"
	// LoggedOut - the session was cleared.
	LoggedOut = "LoggedOut"

	/*friend graph*/

	// FriendRequestSent - the server accepted an outgoing request.
	FriendRequestSent = "FriendRequestSent"
	// FriendRequestAccepted - a pending request was accepted.
	FriendRequestAccepted = "FriendRequestAccepted"
	// FriendRequestDeclined - a pending request was declined.
	FriendRequestDeclined = "FriendRequestDeclined"
	// FriendRemoved - a confirmed friend was removed.
	FriendRemoved = "FriendRemoved"
	// GraphRefreshed - a refresh completed, possibly partially.
	GraphRefreshed = "GraphRefreshed"

	/*messaging*/

	// MessageSent - a message was acknowledged by the server.
	MessageSent = "MessageSent"
	// TranscriptStale - a refetch after a successful send failed.
	TranscriptStale = "TranscriptStale"
)

// Event priorities, matching the levels used by the logger.
const (
	PriorityInfo  = 1
	PriorityWarn  = 2
	PriorityError = 3
)
