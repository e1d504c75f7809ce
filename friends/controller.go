////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package friends is the friend graph controller: candidate search, outgoing
// requests, accept and decline of pending requests, the confirmed friend set
// and removal.
//
// The controller keeps three cached projections: the candidate directory,
// the pending requests and the friends. They are refreshed independently
// and may briefly disagree with each other. Gateway operations never touch
// them; the caller replaces them with a refresh or patches them with
// ForgetPending and ForgetFriend once an operation succeeds.
package friends

import (
	"context"
	"fmt"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/catalog"
	"gitlab.com/safesync/client/event"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
	"gitlab.com/safesync/client/storage/session"
	"gitlab.com/safesync/client/ud"
)

const (
	sendOp           = "Failed to send friend request"
	acceptOp         = "Failed to accept friend request"
	declineOp        = "Failed to decline friend request"
	removeOp         = "Failed to remove friend"
	fetchFriendsOp   = "Failed to fetch friends"
	fetchUsersOp     = "Failed to fetch users"
	fetchRequestsOp  = "Failed to fetch friend requests"
	emptyUsernameMsg = "usernames must not be empty"
)

// Controller owns the friend graph of one session.
type Controller struct {
	gw     gateway.Gateway
	sess   session.Session
	params Params
	events event.Reporter

	dir *ud.Directory

	friends []interfaces.User
	pending []interfaces.FriendRequest
	mux     sync.RWMutex
}

// NewController builds a Controller for sess with empty projections. A nil
// events drops all reports.
func NewController(gw gateway.Gateway, sess session.Session, params Params,
	events event.Reporter) *Controller {
	return &Controller{
		gw:     gw,
		sess:   sess,
		params: params,
		events: event.OrNop(events),
		dir:    ud.NewDirectory(),
	}
}

// Session returns the session the controller was built for.
func (c *Controller) Session() session.Session {
	return c.sess
}

// Search filters the last fetched directory by query. See ud.Directory.
func (c *Controller) Search(query string) []interfaces.User {
	var exclude []string
	if c.params.ExcludeFriendsFromSearch {
		c.mux.RLock()
		exclude = make([]string, 0, len(c.friends))
		for _, f := range c.friends {
			exclude = append(exclude, f.Username)
		}
		c.mux.RUnlock()
	}
	return c.dir.Search(query, c.sess.Username, exclude...)
}

// Candidates returns a copy of the last fetched directory.
func (c *Controller) Candidates() []string {
	return c.dir.Usernames()
}

// Pending returns a copy of the pending requests.
func (c *Controller) Pending() []interfaces.FriendRequest {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return append([]interfaces.FriendRequest(nil), c.pending...)
}

// Friends returns a copy of the confirmed friends.
func (c *Controller) Friends() []interfaces.User {
	c.mux.RLock()
	defer c.mux.RUnlock()
	return append([]interfaces.User(nil), c.friends...)
}

// SendFriendRequest asks the server to open a request from one user to
// another. Pending is not updated; the new request shows up on the next
// refresh.
func (c *Controller) SendFriendRequest(ctx context.Context, from,
	to string) error {
	if from == "" || to == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			emptyUsernameMsg)
	}

	err := c.gw.SendFriendRequest(ctx, gateway.AddFriendRequest{
		SenderUsername:   from,
		ReceiverUsername: to,
	})
	if err != nil {
		jww.WARN.Printf("[FRIENDS] Request %s -> %s failed: %+v", from, to,
			err)
		return gateway.Outcome(sendOp, err)
	}

	jww.INFO.Printf("[FRIENDS] Sent friend request %s -> %s", from, to)
	c.events.Report(catalog.PriorityInfo, catalog.FriendsCategory,
		catalog.FriendRequestSent, fmt.Sprintf("%s -> %s", from, to))
	return nil
}

// AcceptRequest accepts a pending request on behalf of receiver. The full
// {id, sender, receiver} triple is sent even when request came in the
// reduced shape. Empty sender or receiver fails without a network call.
func (c *Controller) AcceptRequest(ctx context.Context,
	request interfaces.PendingRequest, receiver string) error {
	if receiver == "" || request.SenderUsername == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			emptyUsernameMsg)
	}

	canonical := request.Canonical(receiver)
	if err := c.gw.AcceptFriendRequest(ctx, canonical); err != nil {
		jww.WARN.Printf("[FRIENDS] Accepting %s failed: %+v", canonical, err)
		return gateway.Outcome(acceptOp, err)
	}

	jww.INFO.Printf("[FRIENDS] Accepted %s", canonical)
	c.events.Report(catalog.PriorityInfo, catalog.FriendsCategory,
		catalog.FriendRequestAccepted, canonical.String())
	return nil
}

// DeclineRequest declines a pending request. A request without a receiver
// is taken to be addressed to this session, since only those are listed as
// pending.
func (c *Controller) DeclineRequest(ctx context.Context,
	request interfaces.PendingRequest) error {
	receiver := request.ReceiverUsername
	if receiver == "" {
		receiver = c.sess.Username
	}
	if receiver == "" || request.SenderUsername == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			emptyUsernameMsg)
	}

	canonical := request.Canonical(receiver)
	if err := c.gw.DeclineFriendRequest(ctx, canonical); err != nil {
		jww.WARN.Printf("[FRIENDS] Declining %s failed: %+v", canonical, err)
		return gateway.Outcome(declineOp, err)
	}

	jww.INFO.Printf("[FRIENDS] Declined %s", canonical)
	c.events.Report(catalog.PriorityInfo, catalog.FriendsCategory,
		catalog.FriendRequestDeclined, canonical.String())
	return nil
}

// RemoveFriend ends the friendship between username and friendUsername.
func (c *Controller) RemoveFriend(ctx context.Context, username,
	friendUsername string) error {
	if username == "" || friendUsername == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			emptyUsernameMsg)
	}

	err := c.gw.RemoveFriend(ctx, gateway.RemoveFriendRequest{
		Username:       username,
		FriendUsername: friendUsername,
	})
	if err != nil {
		jww.WARN.Printf("[FRIENDS] Removing %s from %s failed: %+v",
			friendUsername, username, err)
		return gateway.Outcome(removeOp, err)
	}

	jww.INFO.Printf("[FRIENDS] Removed %s from %s", friendUsername, username)
	c.events.Report(catalog.PriorityInfo, catalog.FriendsCategory,
		catalog.FriendRemoved, fmt.Sprintf("%s - %s", username,
			friendUsername))
	return nil
}

// ForgetPending drops the pending request with the given id. It reports
// whether one was found.
func (c *Controller) ForgetPending(id int64) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i, r := range c.pending {
		if r.ID == id {
			c.pending = append(c.pending[:i:i], c.pending[i+1:]...)
			return true
		}
	}
	return false
}

// ForgetFriend drops the friend with the given username. It reports whether
// one was found.
func (c *Controller) ForgetFriend(username string) bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	for i, f := range c.friends {
		if f.Username == username {
			c.friends = append(c.friends[:i:i], c.friends[i+1:]...)
			return true
		}
	}
	return false
}
