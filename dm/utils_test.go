////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package dm

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
)

var errNotImplemented = errors.New("not implemented in mock")

// mockGateway stores sent messages and serves a scripted sequence of
// transcripts, recording the order of calls
type mockGateway struct {
	mux   sync.Mutex
	calls []string

	sendErr error
	sent    []interfaces.Message

	// fetches is consumed one entry per GetMessages; the last entry repeats
	fetches  [][]interfaces.Message
	fetchErr error

	key    string
	keyErr error
}

func (m *mockGateway) SendMessage(_ context.Context,
	msg interfaces.Message) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.calls = append(m.calls, "send")
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *mockGateway) GetMessages(context.Context, string, string) (
	[]interfaces.Message, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.calls = append(m.calls, "fetch")
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if len(m.fetches) == 0 {
		return nil, nil
	}
	next := m.fetches[0]
	if len(m.fetches) > 1 {
		m.fetches = m.fetches[1:]
	}
	return next, nil
}

func (m *mockGateway) GetPublicKey(context.Context, string) (string, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.calls = append(m.calls, "key")
	return m.key, m.keyErr
}

func (m *mockGateway) getCalls() []string {
	m.mux.Lock()
	defer m.mux.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockGateway) Register(context.Context,
	gateway.RegisterRequest) error {
	return errNotImplemented
}

func (m *mockGateway) Login(context.Context,
	gateway.LoginRequest) (*gateway.LoginResponse, error) {
	return nil, errNotImplemented
}

func (m *mockGateway) SendFriendRequest(context.Context,
	gateway.AddFriendRequest) error {
	return errNotImplemented
}

func (m *mockGateway) AcceptFriendRequest(context.Context,
	interfaces.FriendRequest) error {
	return errNotImplemented
}

func (m *mockGateway) DeclineFriendRequest(context.Context,
	interfaces.FriendRequest) error {
	return errNotImplemented
}

func (m *mockGateway) RemoveFriend(context.Context,
	gateway.RemoveFriendRequest) error {
	return errNotImplemented
}

func (m *mockGateway) GetFriends(context.Context, string) (
	[]gateway.APIUser, error) {
	return nil, errNotImplemented
}

func (m *mockGateway) GetAllUsernames(context.Context) ([]string, error) {
	return nil, errNotImplemented
}

func (m *mockGateway) GetPendingRequests(context.Context, string) (
	[]interfaces.FriendRequest, error) {
	return nil, errNotImplemented
}

// eventLog is an event.Reporter that records the event types it receives
type eventLog struct {
	mux   sync.Mutex
	types []string
}

func (e *eventLog) Report(_ int, _, evtType, _ string) {
	e.mux.Lock()
	defer e.mux.Unlock()
	e.types = append(e.types, evtType)
}

func (e *eventLog) get() []string {
	e.mux.Lock()
	defer e.mux.Unlock()
	return append([]string(nil), e.types...)
}
