/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dburkart/declscan/pkg/server"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Command = &cobra.Command{
	Use:   "server",
	Short: "Serve a tokenizing HTTP API along with a /metrics endpoint",

	RunE: func(cmd *cobra.Command, args []string) error {
		logger := viper.Get("logger").(zerolog.Logger)

		srv := server.New(logger, server.Config{
			Port:        viper.GetInt("server.port"),
			MetricsPort: viper.GetInt("server.prom-port"),
			MaxBytes:    viper.GetInt64("server.max-bytes"),
			MaxErrors:   viper.GetInt("server.max-errors"),
		})

		errs := make(chan error, 2)
		go func() { errs <- srv.ServeScan() }()
		go func() { errs <- srv.ServeMetrics() }()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		var err error
		select {
		case err = <-errs:
			logger.Error().Err(err).Msg("server stopped")
		case s := <-sig:
			logger.Info().Str("signal", s.String()).Msg("shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
			logger.Error().Err(shutdownErr).Msg("unclean shutdown")
		}
		return err
	},
}

func init() {
	// Flags for this command
	Command.Flags().IntP("port", "p", 8001, "Port for scan requests")
	Command.Flags().Int("prom-port", 2112, "Set the port for /metrics")
	Command.Flags().Int64("max-bytes", 1<<20, "Largest accepted request body")
	Command.Flags().Int("max-errors", 0, "Stop scanning a request after this many errors (0 for no limit)")

	// Bind flags to viper
	viper.BindPFlag("server.port", Command.Flags().Lookup("port"))
	viper.BindPFlag("server.prom-port", Command.Flags().Lookup("prom-port"))
	viper.BindPFlag("server.max-bytes", Command.Flags().Lookup("max-bytes"))
	viper.BindPFlag("server.max-errors", Command.Flags().Lookup("max-errors"))
}
