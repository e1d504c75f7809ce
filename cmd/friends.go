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
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
	"gitlab.com/safesync/client/friends"
	"gitlab.com/safesync/client/interfaces"
)

func init() {
	usersCmd.PersistentFlags().Bool(excludeFriendsFlag, true,
		"Leave confirmed friends out of search results")
	viper.BindPFlag(excludeFriendsFlag,
		usersCmd.PersistentFlags().Lookup(excludeFriendsFlag))

	usersCmd.AddCommand(usersSearchCmd)
	friendsCmd.AddCommand(friendsListCmd, friendsPendingCmd,
		friendsRequestCmd, friendsAcceptCmd, friendsDeclineCmd,
		friendsRemoveCmd)
	rootCmd.AddCommand(usersCmd, friendsCmd)
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Browse the user directory",
}

var usersSearchCmd = &cobra.Command{
	Use:   "search [QUERY]",
	Short: "Case-insensitive substring search over all usernames",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		return withFriends(func(fc *friends.Controller) error {
			res := fc.RefreshAll(context.Background(), fc.Session().Username)
			if res.CandidatesErr != nil {
				return res.CandidatesErr
			}
			if res.FriendsErr != nil {
				jww.WARN.Printf("Friends unavailable, they may appear in "+
					"results: %s", res.FriendsErr)
			}

			for _, u := range fc.Search(query) {
				fmt.Println(u.Username)
			}
			return nil
		})
	},
}

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "Manage friends and friend requests",
}

var friendsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List confirmed friends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			list, err := fc.RefreshFriends(context.Background(),
				fc.Session().Username)
			if err != nil {
				return err
			}
			for _, f := range list {
				key := "-"
				if f.PublicKey != nil {
					key = *f.PublicKey
				}
				fmt.Printf("%s\t%s\tkey %s\t%d friends\n", f.ID, f.Username,
					key, len(f.Friends))
			}
			return nil
		})
	},
}

var friendsPendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "List friend requests waiting on you",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			pending, err := fc.RefreshPending(context.Background(),
				fc.Session().Username)
			if err != nil {
				return err
			}
			for _, r := range pending {
				fmt.Printf("%d\t%s -> %s\n", r.ID, r.SenderUsername,
					r.ReceiverUsername)
			}
			return nil
		})
	},
}

var friendsRequestCmd = &cobra.Command{
	Use:   "request USERNAME",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			err := fc.SendFriendRequest(context.Background(),
				fc.Session().Username, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Friend request sent to %s\n", args[0])
			return nil
		})
	},
}

var friendsAcceptCmd = &cobra.Command{
	Use:   "accept ID",
	Short: "Accept a pending friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			ctx := context.Background()
			request, err := findPending(ctx, fc, args[0])
			if err != nil {
				return err
			}
			err = fc.AcceptRequest(ctx, request.Pending(),
				fc.Session().Username)
			if err != nil {
				return err
			}
			fc.ForgetPending(request.ID)
			fmt.Printf("You and %s are now friends\n", request.SenderUsername)
			return nil
		})
	},
}

var friendsDeclineCmd = &cobra.Command{
	Use:   "decline ID",
	Short: "Decline a pending friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			ctx := context.Background()
			request, err := findPending(ctx, fc, args[0])
			if err != nil {
				return err
			}
			if err = fc.DeclineRequest(ctx, request.Pending()); err != nil {
				return err
			}
			fc.ForgetPending(request.ID)
			fmt.Printf("Declined request from %s\n", request.SenderUsername)
			return nil
		})
	},
}

var friendsRemoveCmd = &cobra.Command{
	Use:   "remove USERNAME",
	Short: "Remove a confirmed friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withFriends(func(fc *friends.Controller) error {
			err := fc.RemoveFriend(context.Background(),
				fc.Session().Username, args[0])
			if err != nil {
				return err
			}
			fc.ForgetFriend(args[0])
			fmt.Printf("Removed %s\n", args[0])
			return nil
		})
	},
}

// withFriends runs fn with a friend graph controller for the stored session.
func withFriends(fn func(fc *friends.Controller) error) error {
	return withClient(func(c *client) error {
		fc, err := c.friendsController()
		if err != nil {
			return err
		}
		return fn(fc)
	})
}

// findPending refreshes the pending requests and returns the one with the
// given id.
func findPending(ctx context.Context, fc *friends.Controller,
	idStr string) (interfaces.FriendRequest, error) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return interfaces.FriendRequest{},
			errors.Errorf("invalid request id %q", idStr)
	}

	pending, err := fc.RefreshPending(ctx, fc.Session().Username)
	if err != nil {
		return interfaces.FriendRequest{}, err
	}
	for _, r := range pending {
		if r.ID == id {
			return r, nil
		}
	}
	return interfaces.FriendRequest{},
		errors.Errorf("no pending request with id %d", id)
}
