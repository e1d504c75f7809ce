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

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	registerCmd.Flags().String(confirmFlag, "",
		"Repeat the password; registration is refused if it differs")
	viper.BindPFlag(confirmFlag, registerCmd.Flags().Lookup(confirmFlag))

	rootCmd.AddCommand(registerCmd, loginCmd, logoutCmd, whoamiCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in as it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentials()
		if err != nil {
			return err
		}
		return withClient(func(c *client) error {
			ctx := context.Background()
			if cmd.Flags().Changed(confirmFlag) {
				err = c.identity.RegisterConfirmed(ctx, username, password,
					viper.GetString(confirmFlag))
			} else {
				err = c.identity.Register(ctx, username, password)
			}
			if err != nil {
				return err
			}
			fmt.Printf("Registered and logged in as %s\n", username)
			return nil
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		username, password, err := credentials()
		if err != nil {
			return err
		}
		return withClient(func(c *client) error {
			sess, err := c.identity.Login(context.Background(), username,
				password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", sess.Username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client) error {
			c.identity.Logout()
			fmt.Println("Logged out")
			return nil
		})
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Print the logged in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(c *client) error {
			sess, ok := c.identity.Current()
			if !ok {
				fmt.Println("Not logged in")
				return nil
			}
			fmt.Println(sess.Username)
			return nil
		})
	},
}
