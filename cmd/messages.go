////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/safesync/client/dm"
	"gitlab.com/safesync/client/interfaces"
)

func init() {
	messagesCmd.AddCommand(messagesFetchCmd, messagesSendCmd)
	rootCmd.AddCommand(messagesCmd)
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "Read and send direct messages",
}

var messagesFetchCmd = &cobra.Command{
	Use:   "fetch PEER",
	Short: "Print the conversation with PEER",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client) error {
			conv, err := c.conversation(args[0])
			if err != nil {
				return err
			}
			msgs, err := conv.Fetch(context.Background())
			if err != nil {
				return err
			}
			printTranscript(msgs)
			return nil
		})
	},
}

var messagesSendCmd = &cobra.Command{
	Use:   "send PEER TEXT...",
	Short: "Send a message to PEER and print the conversation",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client) error {
			conv, err := c.conversation(args[0])
			if err != nil {
				return err
			}
			conv.SetDraft(strings.Join(args[1:], " "))
			if err = conv.SendDraft(context.Background()); err != nil {
				return err
			}
			printTranscript(conv.Transcript())
			return nil
		})
	},
}

// conversation opens the conversation between the stored session and peer.
func (c *client) conversation(peer string) (*dm.Conversation, error) {
	sess, err := c.requireSession()
	if err != nil {
		return nil, err
	}
	return dm.NewConversation(c.gw, sess, peer, c.events), nil
}

func printTranscript(msgs []interfaces.Message) {
	for _, m := range msgs {
		fmt.Printf("%s: %s\n", m.Sender, m.Content)
	}
}
