////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package friends

import (
	"context"
	"fmt"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/catalog"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
)

// RefreshResult holds the three independent outcomes of RefreshAll. A field
// whose error is set holds nil and its projection kept its previous value.
type RefreshResult struct {
	Friends    []interfaces.User
	FriendsErr error

	Candidates    []string
	CandidatesErr error

	Pending    []interfaces.FriendRequest
	PendingErr error
}

// Complete reports whether all three fetches succeeded.
func (r RefreshResult) Complete() bool {
	return r.FriendsErr == nil && r.CandidatesErr == nil &&
		r.PendingErr == nil
}

func (r RefreshResult) String() string {
	status := func(err error) string {
		if err != nil {
			return "failed"
		}
		return "ok"
	}
	return fmt.Sprintf("friends %s (%d), candidates %s (%d), pending %s (%d)",
		status(r.FriendsErr), len(r.Friends),
		status(r.CandidatesErr), len(r.Candidates),
		status(r.PendingErr), len(r.Pending))
}

// RefreshAll fetches friends, the directory and the pending requests
// concurrently. Each fetch succeeds or fails on its own.
func (c *Controller) RefreshAll(ctx context.Context,
	username string) RefreshResult {
	var result RefreshResult
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		result.Friends, result.FriendsErr = c.RefreshFriends(ctx, username)
	}()
	go func() {
		defer wg.Done()
		result.Candidates, result.CandidatesErr = c.RefreshCandidates(ctx)
	}()
	go func() {
		defer wg.Done()
		result.Pending, result.PendingErr = c.RefreshPending(ctx, username)
	}()

	wg.Wait()

	jww.DEBUG.Printf("[FRIENDS] Refreshed for %s: %s", username, result)
	priority := catalog.PriorityInfo
	if !result.Complete() {
		priority = catalog.PriorityWarn
	}
	c.events.Report(priority, catalog.FriendsCategory,
		catalog.GraphRefreshed, result.String())
	return result
}

// RefreshFriends replaces the friend projection with the server's list for
// username. Nested friends are kept one level deep.
func (c *Controller) RefreshFriends(ctx context.Context,
	username string) ([]interfaces.User, error) {
	if username == "" {
		return nil, interfaces.NewValidationError(
			interfaces.InvalidArgument, emptyUsernameMsg)
	}

	apiUsers, err := c.gw.GetFriends(ctx, username)
	if err != nil {
		jww.WARN.Printf("[FRIENDS] Fetching friends of %s failed: %+v",
			username, err)
		return nil, gateway.Outcome(fetchFriendsOp, err)
	}

	friends := make([]interfaces.User, 0, len(apiUsers))
	for _, u := range apiUsers {
		friends = append(friends, u.ToUser())
	}

	c.mux.Lock()
	c.friends = friends
	c.mux.Unlock()
	return append([]interfaces.User(nil), friends...), nil
}

// RefreshCandidates replaces the directory with the server's full username
// list.
func (c *Controller) RefreshCandidates(ctx context.Context) ([]string,
	error) {
	usernames, err := c.gw.GetAllUsernames(ctx)
	if err != nil {
		jww.WARN.Printf("[FRIENDS] Fetching usernames failed: %+v", err)
		return nil, gateway.Outcome(fetchUsersOp, err)
	}
	c.dir.Replace(usernames)
	return c.dir.Usernames(), nil
}

// RefreshPending replaces the pending projection with the requests
// addressed to username. Requests the server returns without a receiver are
// kept with username filled in.
func (c *Controller) RefreshPending(ctx context.Context,
	username string) ([]interfaces.FriendRequest, error) {
	if username == "" {
		return nil, interfaces.NewValidationError(
			interfaces.InvalidArgument, emptyUsernameMsg)
	}

	requests, err := c.gw.GetPendingRequests(ctx, username)
	if err != nil {
		jww.WARN.Printf("[FRIENDS] Fetching requests for %s failed: %+v",
			username, err)
		return nil, gateway.Outcome(fetchRequestsOp, err)
	}

	pending := make([]interfaces.FriendRequest, 0, len(requests))
	for _, r := range requests {
		switch r.ReceiverUsername {
		case username:
			pending = append(pending, r)
		case "":
			// Rows without a receiver belong to the queried user
			pending = append(pending, r.Pending().Canonical(username))
		default:
			jww.DEBUG.Printf("[FRIENDS] Skipping %s, not addressed to %s",
				r, username)
		}
	}

	c.mux.Lock()
	c.pending = pending
	c.mux.Unlock()
	return append([]interfaces.FriendRequest(nil), pending...), nil
}
