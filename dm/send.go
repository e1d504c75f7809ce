////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file                                                               //
////////////////////////////////////////////////////////////////////////////////

package dm

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	jww "github.com/spf13/jwalterweatherman"
	"gitlab.com/safesync/client/catalog"
	"gitlab.com/safesync/client/gateway"
	"gitlab.com/safesync/client/interfaces"
	"golang.org/x/crypto/blake2b"
)

const (
	// SendMessageTag is the base tag used when generating a debug tag for
	// sending a message.
	SendMessageTag = "Message"

	emptyMessage = "message is empty"
)

// Send delivers content to the recipient and then fetches the transcript
// once, after the server acknowledged the send. Empty or whitespace only
// content is rejected without a network call.
//
// On a failed send the content is kept as the draft. A failed refetch does
// not fail the send; it is logged and reported as TranscriptStale, and the
// previous transcript stays.
func (c *Conversation) Send(ctx context.Context, content string) error {
	if strings.TrimSpace(content) == "" {
		return interfaces.NewValidationError(interfaces.Empty, emptyMessage)
	}
	if c.sender == "" || c.recipient == "" {
		return interfaces.NewValidationError(interfaces.InvalidArgument,
			"conversation needs a sender and a recipient")
	}

	c.sendMux.Lock()
	defer c.sendMux.Unlock()

	msg := interfaces.Message{
		Sender:    c.sender,
		Recipient: c.recipient,
		Content:   content,
	}
	tag := makeDebugTag(msg, SendMessageTag)
	jww.INFO.Printf("[DM][%s] Send(%s -> %s)", tag, c.sender, c.recipient)

	if err := c.gw.SendMessage(ctx, msg); err != nil {
		c.SetDraft(content)
		jww.WARN.Printf("[DM][%s] Send failed: %+v", tag, err)
		return gateway.Outcome(sendOp, err)
	}

	c.clearDraft(content)
	c.events.Report(catalog.PriorityInfo, catalog.MessagingCategory,
		catalog.MessageSent, tag)

	if _, err := c.Fetch(ctx); err != nil {
		jww.ERROR.Printf("[DM][%s] Sent, but refreshing the transcript "+
			"failed: %+v", tag, err)
		c.events.Report(catalog.PriorityWarn, catalog.MessagingCategory,
			catalog.TranscriptStale, fmt.Sprintf("%s: %s", tag, err))
	}
	return nil
}

// SendDraft sends the current draft.
func (c *Conversation) SendDraft(ctx context.Context) error {
	return c.Send(ctx, c.Draft())
}

// clearDraft empties the draft if it still holds the content just sent.
func (c *Conversation) clearDraft(sent string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	if c.draft == sent {
		c.draft = ""
	}
}

// makeDebugTag is a debug helper that creates a non-unique msg identifier.
//
// This is set as the debug tag on messages and enables some level of tracing
// a message (if its contents/chan/type are unique).
func makeDebugTag(msg interfaces.Message, baseTag string) string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(msg.Sender))
	h.Write([]byte(msg.Recipient))
	h.Write([]byte(msg.Content))

	tripCode := base64.RawStdEncoding.EncodeToString(h.Sum(nil))[:12]
	return fmt.Sprintf("%s-%s", baseTag, tripCode)
}
