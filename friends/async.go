////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package friends

import (
	"context"

	"gitlab.com/safesync/client/interfaces"
)

// The Async forms run the blocking call on their own goroutine. Each
// returned channel receives exactly one value.

// SendFriendRequestAsync is the non-blocking form of SendFriendRequest.
func (c *Controller) SendFriendRequestAsync(ctx context.Context, from,
	to string) <-chan error {
	return async(func() error { return c.SendFriendRequest(ctx, from, to) })
}

// AcceptRequestAsync is the non-blocking form of AcceptRequest.
func (c *Controller) AcceptRequestAsync(ctx context.Context,
	request interfaces.PendingRequest, receiver string) <-chan error {
	return async(func() error {
		return c.AcceptRequest(ctx, request, receiver)
	})
}

// DeclineRequestAsync is the non-blocking form of DeclineRequest.
func (c *Controller) DeclineRequestAsync(ctx context.Context,
	request interfaces.PendingRequest) <-chan error {
	return async(func() error { return c.DeclineRequest(ctx, request) })
}

// RemoveFriendAsync is the non-blocking form of RemoveFriend.
func (c *Controller) RemoveFriendAsync(ctx context.Context, username,
	friendUsername string) <-chan error {
	return async(func() error {
		return c.RemoveFriend(ctx, username, friendUsername)
	})
}

// RefreshAllAsync is the non-blocking form of RefreshAll.
func (c *Controller) RefreshAllAsync(ctx context.Context,
	username string) <-chan RefreshResult {
	resultCh := make(chan RefreshResult, 1)
	go func() {
		resultCh <- c.RefreshAll(ctx, username)
	}()
	return resultCh
}

func async(op func() error) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- op()
	}()
	return errCh
}
