////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package identity

import (
	"context"

	"gitlab.com/safesync/client/storage/session"
)

// LoginResult is delivered by LoginAsync.
type LoginResult struct {
	Session session.Session
	Err     error
}

// LoginAsync runs Login on its own goroutine. The channel receives exactly
// one result.
func (m *Manager) LoginAsync(ctx context.Context, username,
	password string) <-chan LoginResult {
	resultCh := make(chan LoginResult, 1)
	go func() {
		s, err := m.Login(ctx, username, password)
		resultCh <- LoginResult{Session: s, Err: err}
	}()
	return resultCh
}

// RegisterAsync runs Register on its own goroutine. The channel receives
// exactly one value, nil on success.
func (m *Manager) RegisterAsync(ctx context.Context, username,
	password string) <-chan error {
	resultCh := make(chan error, 1)
	go func() {
		resultCh <- m.Register(ctx, username, password)
	}()
	return resultCh
}
