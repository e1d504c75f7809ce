////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package friends

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
)

var errNotImplemented = errors.New("not implemented in mock")

// mockGateway serves the friend graph endpoints from fixed values and
// records every call by name
type mockGateway struct {
	mux   sync.Mutex
	calls []string

	friends    []gateway.APIUser
	friendsErr error
	users      []string
	usersErr   error
	pending    []interfaces.FriendRequest
	pendingErr error

	opErr    error
	sent     []gateway.AddFriendRequest
	accepted []interfaces.FriendRequest
	declined []interfaces.FriendRequest
	removed  []gateway.RemoveFriendRequest
}

func (m *mockGateway) record(name string) {
	m.mux.Lock()
	m.calls = append(m.calls, name)
	m.mux.Unlock()
}

func (m *mockGateway) callCount() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.calls)
}

func (m *mockGateway) SendFriendRequest(_ context.Context,
	req gateway.AddFriendRequest) error {
	m.record("send")
	m.mux.Lock()
	defer m.mux.Unlock()
	m.sent = append(m.sent, req)
	return m.opErr
}

func (m *mockGateway) AcceptFriendRequest(_ context.Context,
	req interfaces.FriendRequest) error {
	m.record("accept")
	m.mux.Lock()
	defer m.mux.Unlock()
	m.accepted = append(m.accepted, req)
	return m.opErr
}

func (m *mockGateway) DeclineFriendRequest(_ context.Context,
	req interfaces.FriendRequest) error {
	m.record("decline")
	m.mux.Lock()
	defer m.mux.Unlock()
	m.declined = append(m.declined, req)
	return m.opErr
}

func (m *mockGateway) RemoveFriend(_ context.Context,
	req gateway.RemoveFriendRequest) error {
	m.record("remove")
	m.mux.Lock()
	defer m.mux.Unlock()
	m.removed = append(m.removed, req)
	return m.opErr
}

func (m *mockGateway) GetFriends(context.Context, string) (
	[]gateway.APIUser, error) {
	m.record("friends")
	return m.friends, m.friendsErr
}

func (m *mockGateway) GetAllUsernames(context.Context) ([]string, error) {
	m.record("users")
	return m.users, m.usersErr
}

func (m *mockGateway) GetPendingRequests(context.Context, string) (
	[]interfaces.FriendRequest, error) {
	m.record("pending")
	return m.pending, m.pendingErr
}

func (m *mockGateway) Register(context.Context,
	gateway.RegisterRequest) error {
	return errNotImplemented
}

func (m *mockGateway) Login(context.Context,
	gateway.LoginRequest) (*gateway.LoginResponse, error) {
	return nil, errNotImplemented
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
