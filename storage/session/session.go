////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package session holds the single authenticated identity of a running
// client. The Store is the only process-wide mutable state; the identity
// manager is its only writer. Everything else receives a Session value
// explicitly.
package session

import (
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/elixxir/ekv"
	"gitlab.com/safesync/client/storage/versioned"
)

const (
	sessionPrefix   = "session"
	usernameKey     = "username"
	usernameVersion = 0
)

// Session is the authenticated identity. The zero value is "no session".
type Session struct {
	Username string
}

// IsZero reports whether s holds no identity.
func (s Session) IsZero() bool {
	return s.Username == ""
}

// Store is the narrow capability the core uses to read and write the
// current identity.
type Store interface {
	// GetCurrentUser returns the username and true when a session exists.
	GetCurrentUser() (string, bool)
	// SetCurrentUser replaces the current session.
	SetCurrentUser(username string) error
	// Clear removes the session. Clearing an empty store is not an error.
	Clear() error
}

// Current reads the store into a Session value.
func Current(s Store) (Session, bool) {
	username, ok := s.GetCurrentUser()
	if !ok {
		return Session{}, false
	}
	return Session{Username: username}, true
}

// kvStore keeps the username in memory and mirrors it to a versioned KV
// under a fixed key.
type kvStore struct {
	kv       *versioned.KV
	username string
	loaded   bool
	mux      sync.RWMutex
}

// NewStore returns a Store over kv, loading any session already persisted.
func NewStore(kv *versioned.KV) Store {
	s := &kvStore{kv: kv.Prefix(sessionPrefix)}
	s.load()
	return s
}

// NewMemStore returns a Store that lives only as long as the process.
func NewMemStore() Store {
	return NewStore(versioned.NewKV(ekv.MakeMemstore()))
}

// NewFileStore returns a Store persisted in an encrypted ekv file store
// rooted at dir.
func NewFileStore(dir, password string) (Store, error) {
	fs, err := ekv.NewFilestore(dir, password)
	if err != nil {
		return nil, errors.WithMessage(err,
			"failed to create session storage")
	}
	return NewStore(versioned.NewKV(fs)), nil
}

func (s *kvStore) load() {
	obj, err := s.kv.Get(usernameKey, usernameVersion)
	if err != nil {
		if s.kv.Exists(err) {
			jww.WARN.Printf("[SESSION] Failed to load session: %+v", err)
		}
		return
	}
	s.username = string(obj.Data)
	s.loaded = s.username != ""
	jww.DEBUG.Printf("[SESSION] Loaded session for %q", s.username)
}

// GetCurrentUser returns the stored username.
func (s *kvStore) GetCurrentUser() (string, bool) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.username, s.loaded
}

// SetCurrentUser stores the username. An empty username is rejected; use
// Clear instead.
func (s *kvStore) SetCurrentUser(username string) error {
	if username == "" {
		return errors.New("cannot set an empty session username")
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	err := s.kv.Set(usernameKey,
		versioned.NewObject(usernameVersion, []byte(username)))
	if err != nil {
		return errors.WithMessagef(err,
			"failed to store session for %q", username)
	}
	s.username = username
	s.loaded = true
	return nil
}

// Clear deletes the stored username. The in-memory session is dropped even
// if the backing delete fails.
func (s *kvStore) Clear() error {
	s.mux.Lock()
	defer s.mux.Unlock()

	wasLoaded := s.loaded
	s.username = ""
	s.loaded = false

	if !wasLoaded {
		return nil
	}
	err := s.kv.Delete(usernameKey, usernameVersion)
	if err != nil && s.kv.Exists(err) {
		return errors.WithMessage(err, "failed to delete stored session")
	}
	return nil
}
