////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

// Package dm is the messaging session for one (user, peer) conversation.
//
// The transcript is always the server's: a fetch replaces it wholesale and a
// send is followed by a fetch rather than a local append. Order is the
// server's and is never changed here.
package dm

import (
	"context"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/event"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
	"gitlab.com/safesync/client/storage/session"
)

const (
	fetchOp = "Failed to fetch messages"
	sendOp  = "Failed to send message"
	keyOp   = "Failed to fetch public key"
)

// Conversation is bound to one sender and recipient for its lifetime.
type Conversation struct {
	gw        gateway.Gateway
	sender    string
	recipient string
	events    event.Reporter

	transcript []interfaces.Message
	draft      string
	mux        sync.Mutex

	// sendMux keeps a send and its follow-up fetch together
	sendMux sync.Mutex
}

// NewConversation opens the conversation between the session user and
// recipient. The transcript starts empty. A nil events drops all reports.
func NewConversation(gw gateway.Gateway, sess session.Session,
	recipient string, events event.Reporter) *Conversation {
	return &Conversation{
		gw:        gw,
		sender:    sess.Username,
		recipient: recipient,
		events:    event.OrNop(events),
	}
}

// Sender returns the local user of the conversation.
func (c *Conversation) Sender() string {
	return c.sender
}

// Recipient returns the peer of the conversation.
func (c *Conversation) Recipient() string {
	return c.recipient
}

// Fetch loads the full transcript and replaces the local one with it. On
// failure the previous transcript is kept.
func (c *Conversation) Fetch(ctx context.Context) ([]interfaces.Message,
	error) {
	if c.sender == "" || c.recipient == "" {
		return nil, interfaces.NewValidationError(interfaces.InvalidArgument,
			"conversation needs a sender and a recipient")
	}

	messages, err := c.gw.GetMessages(ctx, c.sender, c.recipient)
	if err != nil {
		jww.WARN.Printf("[DM] Fetching %s/%s failed: %+v", c.sender,
			c.recipient, err)
		return nil, gateway.Outcome(fetchOp, err)
	}

	transcript := make([]interfaces.Message, len(messages))
	copy(transcript, messages)

	c.mux.Lock()
	c.transcript = transcript
	c.mux.Unlock()

	jww.DEBUG.Printf("[DM] Transcript %s/%s holds %d messages", c.sender,
		c.recipient, len(transcript))
	return append([]interfaces.Message(nil), transcript...), nil
}

// Transcript returns a copy of the last fetched transcript.
func (c *Conversation) Transcript() []interfaces.Message {
	c.mux.Lock()
	defer c.mux.Unlock()
	return append([]interfaces.Message(nil), c.transcript...)
}

// Draft returns the pending input.
func (c *Conversation) Draft() string {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.draft
}

// SetDraft replaces the pending input.
func (c *Conversation) SetDraft(content string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.draft = content
}

// PeerPublicKey returns the recipient's published key.
func (c *Conversation) PeerPublicKey(ctx context.Context) (string, error) {
	key, err := c.gw.GetPublicKey(ctx, c.recipient)
	if err != nil {
		return "", gateway.Outcome(keyOp, err)
	}
	return key, nil
}
