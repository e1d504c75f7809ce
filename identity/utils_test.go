////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package identity

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
)

var errNotImplemented = errors.New("not implemented in mock")

// mockGateway answers register and login from fixed values and counts calls
type mockGateway struct {
	mux sync.Mutex

	registerErr error
	registered  []gateway.RegisterRequest

	loginResp  *gateway.LoginResponse
	loginErr   error
	loginCalls int
}

func (m *mockGateway) Register(_ context.Context,
	req gateway.RegisterRequest) error {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.registered = append(m.registered, req)
	return m.registerErr
}

func (m *mockGateway) Login(context.Context,
	gateway.LoginRequest) (*gateway.LoginResponse, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.loginCalls++
	if m.loginErr != nil {
		return nil, m.loginErr
	}
	return m.loginResp, nil
}

func (m *mockGateway) calls() (int, int) {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.registered), m.loginCalls
}

func (m *mockGateway) GetPublicKey(context.Context, string) (string, error) {
	return "", errNotImplemented
}

func (m *mockGateway) SendMessage(context.Context, interfaces.Message) error {
	return errNotImplemented
}

func (m *mockGateway) GetMessages(context.Context, string, string) (
	[]interfaces.Message, error) {
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

// fixedKeys is a KeyProvider returning the same keys every time
type fixedKeys struct {
	keys [4]string
	err  error
}

func (f fixedKeys) GenerateKeys() ([4]string, error) {
	return f.keys, f.err
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
