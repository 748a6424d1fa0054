/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package declscan

import (
	"fmt"
	"os"

	"github.com/dburkart/declscan/cmd/declscan/lint"
	"github.com/dburkart/declscan/cmd/declscan/repl"
	"github.com/dburkart/declscan/cmd/declscan/server"
	"github.com/dburkart/declscan/cmd/declscan/tokens"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	Version        = "develop"
	CommitHash     = "n/a"
	BuildTimestamp = "n/a"

	rootCmd = &cobra.Command{
		Use:   "declscan",
		Short: "declscan tokenizes declaration files (name: type = value)",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initLogging()
			initLogLevel()
			initConfig(cmd.Root().PersistentFlags().Lookup("config").Value.String())
			initLogLevel()
			traceConfig()
		},
		SilenceUsage: true,
		Version:      Version,
	}
)

func init() {
	// Configure the root binary options
	rootCmd.PersistentFlags().CountP("verbose", "v", "-v for debug logs (-vv for trace)")
	rootCmd.PersistentFlags().Bool("local", true, "Configures the logger to print readable logs")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format [csv, json, text]")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the declscan config file (default ./config.toml)")

	// Bind viper config to the root flags
	viper.BindPFlag("declscan.local", rootCmd.PersistentFlags().Lookup("local"))
	viper.BindPFlag("declscan.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("declscan.output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	rootCmd.SetVersionTemplate(fmt.Sprintf("declscan version: %s git_commit: %s build_time: %s\n", Version, CommitHash, BuildTimestamp))

	viper.AutomaticEnv()

	// Register commands on the root binary command
	for _, c := range []*cobra.Command{tokens.Command, lint.Command, repl.Command, server.Command} {
		c.Version = rootCmd.Version
		rootCmd.AddCommand(c)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("root command failed")
		os.Exit(1)
	}
}
