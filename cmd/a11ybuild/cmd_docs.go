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
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/AleutianAI/a11ybuild/cmd/a11ybuild/config"
	"github.com/AleutianAI/a11ybuild/pkg/entity"
	"github.com/AleutianAI/a11ybuild/pkg/loader"
	"github.com/AleutianAI/a11ybuild/pkg/message"
	"github.com/AleutianAI/a11ybuild/pkg/rst"
	"github.com/AleutianAI/a11ybuild/pkg/ux"
)

func runDocs(cmd *cobra.Command, args []string) error {
	langs, err := parseLangs(docsLangs)
	if err != nil {
		return err
	}

	build := func() error {
		entity.ResetAll()
		if _, err := loader.New(config.Global.Basedir, logger).Load(); err != nil {
			return err
		}
		return rst.NewGenerator(docsDest, langs, logger).Generate()
	}

	if err := ux.WithSpinner("generating document fragments", build); err != nil {
		return err
	}

	if !docsWatch {
		return nil
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ux.Info("watching for changes, Ctrl-C to stop")
	err = rst.Watch(ctx, config.Global.Basedir, build, logger)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func parseLangs(s string) ([]string, error) {
	known := map[string]bool{message.LangJa: true, message.LangEn: true}
	var langs []string
	for _, l := range strings.Split(s, ",") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if !known[l] {
			return nil, fmt.Errorf("unsupported language %q", l)
		}
		langs = append(langs, l)
	}
	if len(langs) == 0 {
		langs = []string{message.LangJa}
	}
	return langs, nil
}
