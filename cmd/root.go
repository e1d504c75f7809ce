////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

// Package cmd initializes the CLI and config parsers as well as the logger.
package cmd

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/viper"
)

// profiler is set while a CPU profile is being written
var profiler interface{ Stop() }

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	stopProfiler()
	if err != nil {
		jww.DEBUG.Printf("%+v", err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

// stopProfiler flushes the CPU profile if one is being written.
func stopProfiler() {
	if profiler != nil {
		profiler.Stop()
		profiler = nil
	}
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ssclient",
	Short: "Runs a client for the SafeSync messaging service",
	Long: "Runs a client for the SafeSync messaging service. The logged in " +
		"user is kept in the session directory between invocations.",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLog(viper.GetUint(logLevelFlag), viper.GetString(logFlag))

		profileOut := viper.GetString(profileCpuFlag)
		if profileOut != "" {
			profiler = profile.Start(profile.CPUProfile,
				profile.ProfilePath(profileOut), profile.NoShutdownHook)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		stopProfiler()
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// initLog initializes logging thresholds and the log path.
func initLog(threshold uint, logPath string) {
	if logPath != "-" && logPath != "" {
		// Disable stdout output
		jww.SetStdoutOutput(ioutil.Discard)
		// Use log file
		logOutput, err := os.OpenFile(logPath,
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			panic(err.Error())
		}
		jww.SetLogOutput(logOutput)
	}

	if threshold > 1 {
		jww.INFO.Printf("log level set to: TRACE")
		jww.SetStdoutThreshold(jww.LevelTrace)
		jww.SetLogThreshold(jww.LevelTrace)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else if threshold == 1 {
		jww.INFO.Printf("log level set to: DEBUG")
		jww.SetStdoutThreshold(jww.LevelDebug)
		jww.SetLogThreshold(jww.LevelDebug)
		jww.SetFlags(log.LstdFlags | log.Lmicroseconds)
	} else {
		jww.SetStdoutThreshold(jww.LevelWarn)
		jww.SetLogThreshold(jww.LevelInfo)
	}
}

func init() {
	// NOTE: The point of init() is to be declarative.
	// There is one init in each sub command. Do not put variable declarations
	// here, and ensure all the Flags are of the *P variety, unless there's a
	// very good reason not to have them as local params to sub command."
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().UintP(logLevelFlag, "v", 0,
		"Verbose mode for debugging")
	viper.BindPFlag(logLevelFlag, rootCmd.PersistentFlags().Lookup(logLevelFlag))

	rootCmd.PersistentFlags().StringP(logFlag, "l", "-",
		"Path to the log output path (- is stdout)")
	viper.BindPFlag(logFlag, rootCmd.PersistentFlags().Lookup(logFlag))

	rootCmd.PersistentFlags().StringP(configFlag, "c", "",
		"Optional config file (yaml, json or toml)")
	viper.BindPFlag(configFlag, rootCmd.PersistentFlags().Lookup(configFlag))

	rootCmd.PersistentFlags().StringP(usernameFlag, "u", "",
		"Account username for register and login")
	viper.BindPFlag(usernameFlag, rootCmd.PersistentFlags().Lookup(usernameFlag))

	rootCmd.PersistentFlags().StringP(passwordFlag, "p", "",
		"Account password for register and login")
	viper.BindPFlag(passwordFlag, rootCmd.PersistentFlags().Lookup(passwordFlag))

	rootCmd.PersistentFlags().StringP(sessionFlag, "s", ".ssclient",
		"Sets the storage directory for client session data, "+
			"empty keeps the session in memory")
	viper.BindPFlag(sessionFlag, rootCmd.PersistentFlags().Lookup(sessionFlag))

	rootCmd.PersistentFlags().String(sessionPasswordFlag, "",
		"Password used to encrypt the session storage")
	viper.BindPFlag(sessionPasswordFlag,
		rootCmd.PersistentFlags().Lookup(sessionPasswordFlag))

	rootCmd.PersistentFlags().String(serverFlag, "http://localhost:8080",
		"Base URL of the SafeSync server")
	viper.BindPFlag(serverFlag, rootCmd.PersistentFlags().Lookup(serverFlag))

	rootCmd.PersistentFlags().Duration(timeoutFlag, 0,
		"Per request timeout, 0 keeps the default")
	viper.BindPFlag(timeoutFlag, rootCmd.PersistentFlags().Lookup(timeoutFlag))

	rootCmd.PersistentFlags().Int(requestsPerSecondFlag, 0,
		"Maximum requests per second sent to the server, 0 is unlimited")
	viper.BindPFlag(requestsPerSecondFlag,
		rootCmd.PersistentFlags().Lookup(requestsPerSecondFlag))

	rootCmd.PersistentFlags().String(profileCpuFlag, "",
		"Enable cpu profiling to this directory")
	viper.BindPFlag(profileCpuFlag,
		rootCmd.PersistentFlags().Lookup(profileCpuFlag))
}

// envKeyReplacer maps dashed flag names such as profile-cpu onto valid
// variable names (SSCHAT_PROFILE_CPU).
var envKeyReplacer = strings.NewReplacer("-", "_")

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	cfgFile := viper.GetString(configFlag)
	if cfgFile == "" {
		return
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		jww.FATAL.Panicf("Failed to read config file %s: %+v", cfgFile, err)
	}
}
