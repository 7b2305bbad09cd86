// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AleutianAI/a11ybuild/cmd/a11ybuild/config"
	"github.com/AleutianAI/a11ybuild/pkg/logging"
	"github.com/AleutianAI/a11ybuild/pkg/ux"
)

// logger is the run-scoped logger, tagged with a fresh run id so log
// lines from overlapping watch rebuilds stay attributable.
var logger *logging.Logger

func main() {
	if err := rootCmd.Execute(); err != nil {
		// One diagnostic line per failure; details are in the log.
		ux.Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if quiet {
			ux.SetPlain(true)
		}
		if err := config.Load(configPath); err != nil {
			return err
		}
		if basedir != "" {
			config.Global.Basedir = basedir
		}
		logger = logging.New(logging.Config{
			Level:   logging.ParseLevel(config.Global.LogLevel),
			Service: "a11ybuild",
			Quiet:   quiet,
		}).With("run", uuid.NewString())
		return nil
	}
}
