////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/safesync/client/event"
	"gitlab.com/safesync/client/friends"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/identity"
	"gitlab.com/safesync/client/storage/session"
)

const eventCallbackName = "cli"

// client is everything one CLI invocation needs, built from the flags
type client struct {
	gw       gateway.Gateway
	store    session.Store
	identity *identity.Manager
	events   event.Manager
}

// initClient builds the gateway, the session store and the identity manager
// from the current flags and starts event delivery.
func initClient() (*client, error) {
	params := gateway.GetDefaultParams()
	params.BaseURL = viper.GetString(serverFlag)
	if timeout := viper.GetDuration(timeoutFlag); timeout > 0 {
		params.Timeout = timeout
	}
	params.RequestsPerSecond = viper.GetInt(requestsPerSecondFlag)
	gw := gateway.NewHTTPGateway(params)

	store, err := initStore()
	if err != nil {
		return nil, err
	}

	events := event.NewEventManager()
	err = events.RegisterEventCallback(eventCallbackName,
		func(priority int, category, evtType, details string) {
			jww.INFO.Printf("[EVENT] %d %s/%s: %s", priority, category,
				evtType, details)
		})
	if err != nil {
		return nil, err
	}
	events.Start()

	return &client{
		gw:       gw,
		store:    store,
		identity: identity.NewManager(gw, store, nil, events),
		events:   events,
	}, nil
}

func initStore() (session.Store, error) {
	dir := viper.GetString(sessionFlag)
	if dir == "" {
		jww.WARN.Printf("No session directory set, the session will not " +
			"outlive this command")
		return session.NewMemStore(), nil
	}
	return session.NewFileStore(dir, viper.GetString(sessionPasswordFlag))
}

// close stops event delivery once every reported event is out.
func (c *client) close() {
	c.events.Stop()
}

// requireSession returns the stored session or an error when there is none.
func (c *client) requireSession() (session.Session, error) {
	sess, ok := c.identity.Current()
	if !ok {
		return session.Session{}, errors.New("not logged in, run login first")
	}
	return sess, nil
}

// friendsController builds a friend graph controller for the stored session.
func (c *client) friendsController() (*friends.Controller, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	params := friends.GetDefaultParams()
	params.ExcludeFriendsFromSearch = viper.GetBool(excludeFriendsFlag)
	return friends.NewController(c.gw, sess, params, c.events), nil
}

// withClient runs fn against a fresh client and always shuts it down, so the
// error reaches Execute only after cleanup.
func withClient(fn func(c *client) error) error {
	c, err := initClient()
	if err != nil {
		return err
	}
	defer c.close()
	return fn(c)
}

// credentials returns the account flags, or an error when either is missing.
func credentials() (string, string, error) {
	username := viper.GetString(usernameFlag)
	password := viper.GetString(passwordFlag)
	if username == "" || password == "" {
		return "", "", errors.Errorf("--%s and --%s are required",
			usernameFlag, passwordFlag)
	}
	return username, password, nil
}
