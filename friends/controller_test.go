////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package friends

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
	"gitlab.com/safesync/client/storage/session"
)

func newTestController(username string, params Params) (*Controller,
	*mockGateway) {
	gw := &mockGateway{}
	return NewController(gw, session.Session{Username: username}, params,
		nil), gw
}

func names(users []interfaces.User) []string {
	out := make([]string, 0, len(users))
	for _, u := range users {
		out = append(out, u.Username)
	}
	return out
}

func TestController_Search(t *testing.T) {
	c, gw := newTestController("bob", Params{})
	gw.users = []string{"alice", "bob", "carol"}

	_, err := c.RefreshCandidates(context.Background())
	require.NoError(t, err)

	calls := gw.callCount()
	require.Equal(t, []string{"alice", "carol"}, names(c.Search("a")))
	require.Equal(t, []string{"alice", "carol"}, names(c.Search("")))
	require.Empty(t, c.Search("bob"))
	// Search never reaches the gateway
	require.Equal(t, calls, gw.callCount())
}

func TestController_Search_ExcludeFriends(t *testing.T) {
	c, gw := newTestController("bob", GetDefaultParams())
	gw.users = []string{"alice", "bob", "carol"}
	gw.friends = []gateway.APIUser{{ID: "1", Username: "alice"}}

	res := c.RefreshAll(context.Background(), "bob")
	require.True(t, res.Complete())
	require.Equal(t, []string{"carol"}, names(c.Search("a")))

	c2, gw2 := newTestController("bob", Params{})
	gw2.users, gw2.friends = gw.users, gw.friends
	c2.RefreshAll(context.Background(), "bob")
	require.Equal(t, []string{"alice", "carol"}, names(c2.Search("a")))
}

func TestController_RefreshAll(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	key := "kb"
	gw.friends = []gateway.APIUser{{ID: "2", Username: "bob",
		PublicKey: &key}}
	gw.users = []string{"alice", "bob", "carol"}
	gw.pending = []interfaces.FriendRequest{
		{ID: 5, SenderUsername: "carol", ReceiverUsername: "alice"},
		{ID: 6, SenderUsername: "alice", ReceiverUsername: "dave"},
	}

	res := c.RefreshAll(context.Background(), "alice")
	require.True(t, res.Complete())
	require.Equal(t, []string{"bob"}, names(res.Friends))
	require.Equal(t, []string{"alice", "bob", "carol"}, res.Candidates)
	require.Equal(t, []interfaces.FriendRequest{{ID: 5,
		SenderUsername: "carol", ReceiverUsername: "alice"}}, res.Pending)

	require.Equal(t, res.Friends, c.Friends())
	require.Equal(t, res.Candidates, c.Candidates())
	require.Equal(t, res.Pending, c.Pending())
	require.Equal(t, 3, gw.callCount())
}

// barrierGateway holds each list fetch until release is closed
type barrierGateway struct {
	*mockGateway
	arrived chan string
	release chan struct{}
}

func (b *barrierGateway) wait(name string) {
	b.arrived <- name
	<-b.release
}

func (b *barrierGateway) GetFriends(ctx context.Context, username string) (
	[]gateway.APIUser, error) {
	b.wait("friends")
	return b.mockGateway.GetFriends(ctx, username)
}

func (b *barrierGateway) GetAllUsernames(ctx context.Context) ([]string,
	error) {
	b.wait("users")
	return b.mockGateway.GetAllUsernames(ctx)
}

func (b *barrierGateway) GetPendingRequests(ctx context.Context,
	username string) ([]interfaces.FriendRequest, error) {
	b.wait("pending")
	return b.mockGateway.GetPendingRequests(ctx, username)
}

// All three fetches must be in flight before any of them completes
func TestController_RefreshAll_Concurrent(t *testing.T) {
	gw := &barrierGateway{
		mockGateway: &mockGateway{users: []string{"alice", "bob"}},
		arrived:     make(chan string, 3),
		release:     make(chan struct{}),
	}
	c := NewController(gw, session.Session{Username: "alice"}, Params{}, nil)

	done := make(chan RefreshResult, 1)
	go func() { done <- c.RefreshAll(context.Background(), "alice") }()

	seen := make(map[string]bool)
	for len(seen) < 3 {
		select {
		case name := <-gw.arrived:
			seen[name] = true
		case <-time.After(time.Second):
			t.Fatalf("Only %d of 3 fetches in flight: %v", len(seen), seen)
		}
	}
	close(gw.release)

	select {
	case res := <-done:
		require.True(t, res.Complete())
		require.Equal(t, []string{"alice", "bob"}, res.Candidates)
	case <-time.After(time.Second):
		t.Fatal("RefreshAll did not return after release")
	}
}

// Rows the server returns without a receiver are addressed to the caller
func TestController_RefreshPending_NoReceiver(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.pending = []interfaces.FriendRequest{
		{ID: 7, SenderUsername: "bob"},
		{ID: 8, SenderUsername: "carol", ReceiverUsername: "alice"},
		{ID: 9, SenderUsername: "alice", ReceiverUsername: "dave"},
	}

	pending, err := c.RefreshPending(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []interfaces.FriendRequest{
		{ID: 7, SenderUsername: "bob", ReceiverUsername: "alice"},
		{ID: 8, SenderUsername: "carol", ReceiverUsername: "alice"},
	}, pending)
	require.Equal(t, pending, c.Pending())

	require.NoError(t, c.DeclineRequest(context.Background(),
		c.Pending()[0].Pending()))
	require.Equal(t, "alice", gw.declined[0].ReceiverUsername)
}

func TestController_RefreshPending_NoReceiverOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("username") != "alice" {
				http.Error(w, `{"error": "wrong user"}`, http.StatusBadRequest)
				return
			}
			w.Write([]byte(`[{"id":7,"sender_username":"bob"}]`))
		}))
	defer srv.Close()

	gw := gateway.NewHTTPGateway(gateway.Params{BaseURL: srv.URL,
		Timeout: time.Second})
	c := NewController(gw, session.Session{Username: "alice"}, Params{}, nil)

	pending, err := c.RefreshPending(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, []interfaces.FriendRequest{{ID: 7,
		SenderUsername: "bob", ReceiverUsername: "alice"}}, pending)
}

// One failing fetch is reported on its own and leaves its cache alone
func TestController_RefreshAll_Partial(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.friends = []gateway.APIUser{{ID: "2", Username: "bob"}}
	gw.users = []string{"alice", "bob"}
	gw.pending = []interfaces.FriendRequest{
		{ID: 1, SenderUsername: "bob", ReceiverUsername: "alice"}}
	require.True(t, c.RefreshAll(context.Background(), "alice").Complete())

	gw.friends = nil
	gw.users = []string{"alice", "bob", "carol"}
	gw.pendingErr = &gateway.ResponseError{StatusCode: 500,
		Body: `{"error": "Failed to retrieve friend requests"}`}
	gw.friendsErr = errors.New("connection reset")

	res := c.RefreshAll(context.Background(), "alice")
	require.False(t, res.Complete())

	require.True(t, interfaces.IsTransport(res.FriendsErr))
	require.Nil(t, res.Friends)
	require.Equal(t, []string{"bob"}, names(c.Friends()))

	require.NoError(t, res.CandidatesErr)
	require.Equal(t, []string{"alice", "bob", "carol"}, c.Candidates())

	require.True(t, interfaces.IsBusiness(res.PendingErr))
	require.Len(t, c.Pending(), 1)
}

func TestController_RefreshFriends_Flattens(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.friends = []gateway.APIUser{{ID: "2", Username: "bob",
		Friends: []gateway.APIUser{{ID: "1", Username: "alice",
			Friends: []gateway.APIUser{{ID: "2", Username: "bob"}}}}}}

	friends, err := c.RefreshFriends(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	require.Len(t, friends[0].Friends, 1)
	require.Empty(t, friends[0].Friends[0].Friends)
}

func TestController_RefreshEmptyUsername(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	res := c.RefreshAll(context.Background(), "")
	require.True(t, interfaces.IsValidation(res.FriendsErr))
	require.True(t, interfaces.IsValidation(res.PendingErr))
	// Only the directory fetch needs no username
	require.Equal(t, 1, gw.callCount())
}

func TestController_SendFriendRequest(t *testing.T) {
	c, gw := newTestController("alice", Params{})

	require.NoError(t, c.SendFriendRequest(context.Background(),
		"alice", "bob"))
	require.Equal(t, []gateway.AddFriendRequest{{SenderUsername: "alice",
		ReceiverUsername: "bob"}}, gw.sent)
	// No optimistic insert
	require.Empty(t, c.Pending())

	err := c.SendFriendRequest(context.Background(), "alice", "")
	require.True(t, errors.Is(err, interfaces.ErrInvalidArgument))
	require.Len(t, gw.sent, 1)
}

func TestController_SendFriendRequest_Duplicate(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.opErr = &gateway.ResponseError{StatusCode: http.StatusConflict,
		Body: `{"error": "Friend request already exists"}`}

	err := c.SendFriendRequest(context.Background(), "alice", "bob")
	var be *interfaces.BusinessError
	require.True(t, errors.As(err, &be))
	require.Equal(t, sendOp, be.Op)
	require.Equal(t, http.StatusConflict, be.StatusCode)
}

// An empty receiver is rejected locally with no gateway call
func TestController_AcceptRequest_EmptyReceiver(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	requests := []interfaces.PendingRequest{
		{ID: 1, SenderUsername: "bob"},
		{ID: 2, SenderUsername: "carol", ReceiverUsername: "alice"},
		{ID: 3},
	}
	for _, r := range requests {
		err := c.AcceptRequest(context.Background(), r, "")
		require.True(t, errors.Is(err, interfaces.ErrInvalidArgument))
	}
	err := c.AcceptRequest(context.Background(),
		interfaces.PendingRequest{ID: 4}, "alice")
	require.True(t, interfaces.IsValidation(err))
	require.Zero(t, gw.callCount())
}

// The full triple goes out exactly once, built from the reduced shape
func TestController_AcceptRequest_Canonical(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.pending = []interfaces.FriendRequest{
		{ID: 9, SenderUsername: "bob", ReceiverUsername: "alice"}}
	_, err := c.RefreshPending(context.Background(), "alice")
	require.NoError(t, err)
	before := gw.callCount()

	reduced := interfaces.PendingRequest{ID: 9, SenderUsername: "bob"}
	require.NoError(t, c.AcceptRequest(context.Background(), reduced,
		"alice"))

	require.Equal(t, before+1, gw.callCount())
	require.Equal(t, []interfaces.FriendRequest{{ID: 9,
		SenderUsername: "bob", ReceiverUsername: "alice"}}, gw.accepted)
	// The cache is the caller's to patch
	require.Len(t, c.Pending(), 1)
	require.True(t, c.ForgetPending(9))
	require.Empty(t, c.Pending())
	require.False(t, c.ForgetPending(9))
}

func TestController_DeclineRequest_Canonical(t *testing.T) {
	c, gw := newTestController("alice", Params{})

	require.NoError(t, c.DeclineRequest(context.Background(),
		interfaces.PendingRequest{ID: 3, SenderUsername: "carol"}))
	require.NoError(t, c.DeclineRequest(context.Background(),
		interfaces.FriendRequest{ID: 4, SenderUsername: "dave",
			ReceiverUsername: "alice"}.Pending()))

	require.Equal(t, []interfaces.FriendRequest{
		{ID: 3, SenderUsername: "carol", ReceiverUsername: "alice"},
		{ID: 4, SenderUsername: "dave", ReceiverUsername: "alice"},
	}, gw.declined)
	require.Equal(t, 2, gw.callCount())

	err := c.DeclineRequest(context.Background(),
		interfaces.PendingRequest{ID: 5})
	require.True(t, interfaces.IsValidation(err))
	require.Equal(t, 2, gw.callCount())
}

// Resolving an already resolved request is an ordinary error
func TestController_DeclineRequest_AlreadyResolved(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.opErr = &gateway.ResponseError{StatusCode: http.StatusNotFound,
		Body: `{"error": "Friend request not found"}`}

	err := c.DeclineRequest(context.Background(),
		interfaces.PendingRequest{ID: 3, SenderUsername: "carol"})
	require.True(t, interfaces.IsBusiness(err))
	err = c.AcceptRequest(context.Background(),
		interfaces.PendingRequest{ID: 3, SenderUsername: "carol"}, "alice")
	require.True(t, interfaces.IsBusiness(err))
}

func TestController_RemoveFriend(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.friends = []gateway.APIUser{{ID: "2", Username: "bob"},
		{ID: "3", Username: "carol"}}
	_, err := c.RefreshFriends(context.Background(), "alice")
	require.NoError(t, err)

	require.NoError(t, c.RemoveFriend(context.Background(), "alice", "bob"))
	require.Equal(t, []gateway.RemoveFriendRequest{{Username: "alice",
		FriendUsername: "bob"}}, gw.removed)
	require.Len(t, c.Friends(), 2)

	// Patching by username works even if the cached value went stale
	require.True(t, c.ForgetFriend("bob"))
	require.Equal(t, []string{"carol"}, names(c.Friends()))
	require.False(t, c.ForgetFriend("bob"))

	gw.opErr = errors.New("broken pipe")
	err = c.RemoveFriend(context.Background(), "alice", "carol")
	require.True(t, interfaces.IsTransport(err))
}

// Copies handed out are not affected by later patches
func TestController_ProjectionCopies(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.friends = []gateway.APIUser{{ID: "2", Username: "bob"},
		{ID: "3", Username: "carol"}}
	_, err := c.RefreshFriends(context.Background(), "alice")
	require.NoError(t, err)

	snapshot := c.Friends()
	require.True(t, c.ForgetFriend("bob"))
	require.Equal(t, []string{"bob", "carol"}, names(snapshot))
}

func TestController_Async(t *testing.T) {
	c, gw := newTestController("alice", Params{})
	gw.users = []string{"alice"}
	ctx := context.Background()

	wait := func(ch <-chan error) error {
		select {
		case err := <-ch:
			return err
		case <-time.After(time.Second):
			t.Fatal("Timed out")
			return nil
		}
	}

	require.NoError(t, wait(c.SendFriendRequestAsync(ctx, "alice", "bob")))
	require.NoError(t, wait(c.AcceptRequestAsync(ctx,
		interfaces.PendingRequest{ID: 1, SenderUsername: "bob"}, "alice")))
	require.NoError(t, wait(c.DeclineRequestAsync(ctx,
		interfaces.PendingRequest{ID: 2, SenderUsername: "bob"})))
	require.NoError(t, wait(c.RemoveFriendAsync(ctx, "alice", "bob")))

	select {
	case res := <-c.RefreshAllAsync(ctx, "alice"):
		require.True(t, res.Complete())
	case <-time.After(time.Second):
		t.Fatal("Timed out")
	}
}

func TestParseParameters(t *testing.T) {
	p, err := ParseParameters("")
	require.NoError(t, err)
	require.True(t, p.ExcludeFriendsFromSearch)

	p, err = ParseParameters(`{"ExcludeFriendsFromSearch":false}`)
	require.NoError(t, err)
	require.False(t, p.ExcludeFriendsFromSearch)
}
