////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package dm

import (
	"context"

	"gitlab.com/safesync/client/interfaces"
)

// FetchResult is delivered by FetchAsync.
type FetchResult struct {
	Messages []interfaces.Message
	Err      error
}

// SendAsync runs Send on its own goroutine. The channel receives exactly
// one value, nil on success.
func (c *Conversation) SendAsync(ctx context.Context,
	content string) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Send(ctx, content)
	}()
	return errCh
}

// FetchAsync runs Fetch on its own goroutine. The channel receives exactly
// one result.
func (c *Conversation) FetchAsync(ctx context.Context) <-chan FetchResult {
	resultCh := make(chan FetchResult, 1)
	go func() {
		msgs, err := c.Fetch(ctx)
		resultCh <- FetchResult{Messages: msgs, Err: err}
	}()
	return resultCh
}
