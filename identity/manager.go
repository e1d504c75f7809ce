////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package identity owns the login and registration flows. It is the only
// writer of the session store.
package identity

import (
	"context"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/catalog"
	"gitlab.com/safesync/client/event"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
	"gitlab.com/safesync/client/storage/session"
)

const (
	registerOp = "Registration failed"
	loginOp    = "Login failed"

	passwordMismatch = "Passwords do not match"
)

// Manager turns gateway replies into session state.
type Manager struct {
	gw     gateway.Gateway
	store  session.Store
	keys   KeyProvider
	events event.Reporter
}

// NewManager builds a Manager. A nil keys uses PlaceholderKeys; a nil events
// drops all reports.
func NewManager(gw gateway.Gateway, store session.Store, keys KeyProvider,
	events event.Reporter) *Manager {
	if keys == nil {
		keys = NewPlaceholderKeys()
	}
	return &Manager{
		gw:     gw,
		store:  store,
		keys:   keys,
		events: event.OrNop(events),
	}
}

// Register creates the account and, on success, establishes the session for
// username without a separate login. A rejection carries the server body
// verbatim. The session is untouched on failure.
func (m *Manager) Register(ctx context.Context, username,
	password string) error {
	if username == "" || password == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			"username and password must not be empty")
	}

	keys, err := m.keys.GenerateKeys()
	if err != nil {
		return errors.WithMessagef(err, "failed to generate keys for %q",
			username)
	}

	account := interfaces.Account{
		Username:   username,
		Password:   password,
		PublicKeys: keys,
	}
	err = m.gw.Register(ctx, gateway.NewRegisterRequest(account))
	if err != nil {
		jww.WARN.Printf("[SESSION] Registration of %q failed: %+v",
			username, err)
		return gateway.Outcome(registerOp, err)
	}

	if err = m.store.SetCurrentUser(username); err != nil {
		return errors.WithMessage(err,
			"registered but failed to store session")
	}

	jww.INFO.Printf("[SESSION] Registered %q", username)
	m.events.Report(catalog.PriorityInfo, catalog.SessionCategory,
		catalog.Registered, username)
	return nil
}

// RegisterConfirmed is Register with a repeated password. A mismatch is
// rejected before any network call.
func (m *Manager) RegisterConfirmed(ctx context.Context, username, password,
	confirm string) error {
	if password != confirm {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			passwordMismatch)
	}
	return m.Register(ctx, username, password)
}

// Login checks the credentials and writes the session on success. A 2xx
// reply reporting success as false is a BusinessError with the server
// message; the session is untouched on any failure.
func (m *Manager) Login(ctx context.Context, username,
	password string) (session.Session, error) {
	if username == "" || password == "" {
		return session.Session{}, interfaces.NewValidationError(
			interfaces.InvalidArgument,
			"username and password must not be empty")
	}

	resp, err := m.gw.Login(ctx, gateway.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		jww.WARN.Printf("[SESSION] Login of %q failed: %+v", username, err)
		return session.Session{}, gateway.ReasonOutcome(loginOp, err)
	}
	if resp == nil {
		jww.WARN.Printf("[SESSION] Login of %q returned no reply", username)
		return session.Session{}, interfaces.NewBusinessError(loginOp, "", 0)
	}
	if !resp.Success {
		jww.INFO.Printf("[SESSION] Login of %q rejected: %s", username,
			resp.Message)
		return session.Session{}, interfaces.NewBusinessError(loginOp,
			resp.Message, 0)
	}

	if err = m.store.SetCurrentUser(username); err != nil {
		return session.Session{}, errors.WithMessage(err,
			"logged in but failed to store session")
	}

	jww.INFO.Printf("[SESSION] Logged in as %q", username)
	m.events.Report(catalog.PriorityInfo, catalog.SessionCategory,
		catalog.LoggedIn, username)
	return session.Session{Username: username}, nil
}

// Logout clears the session. It always succeeds and may be called with no
// session.
func (m *Manager) Logout() {
	username, hadSession := m.store.GetCurrentUser()
	if err := m.store.Clear(); err != nil {
		jww.WARN.Printf("[SESSION] Failed to clear stored session: %+v", err)
	}
	if !hadSession {
		return
	}
	jww.INFO.Printf("[SESSION] Logged out %q", username)
	m.events.Report(catalog.PriorityInfo, catalog.SessionCategory,
		catalog.LoggedOut, username)
}

// Current returns the active session, if any.
func (m *Manager) Current() (session.Session, bool) {
	return session.Current(m.store)
}
