////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package cmd

// This is a comprehensive list of CLI flag name constants. Organized by
// subcommand, with root level CLI flags at the top of the list. Newly added
// flags for any existing or new subcommands should be listed and organized
// here. Pulling flags using Viper should use the constants defined here.
const (
	//////////////// Root flags ///////////////////////////////////////////////

	// Log flags
	logLevelFlag = "logLevel"
	logFlag      = "log"

	// Config
	configFlag = "config"

	// Account flags
	usernameFlag = "username"
	passwordFlag = "password"

	// Session storage
	sessionFlag         = "session"
	sessionPasswordFlag = "sessionPassword"

	// Gateway flags
	serverFlag            = "server"
	timeoutFlag           = "timeout"
	requestsPerSecondFlag = "requestsPerSecond"

	// Misc
	profileCpuFlag = "profile-cpu"

	///////////////// Register subcommand flags ///////////////////////////////
	confirmFlag = "confirm"

	///////////////// Friends subcommand flags ////////////////////////////////
	excludeFriendsFlag = "excludeFriends"
)

// envPrefix is prepended to every flag name when read from the environment,
// e.g. SSCHAT_SERVER.
const envPrefix = "SSCHAT"
