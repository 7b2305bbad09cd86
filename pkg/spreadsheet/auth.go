// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package spreadsheet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/logging"
)

// NewHTTPClient builds an authorized HTTP client from OAuth client
// secrets, using a cached token when one exists. A missing or
// unreadable token cache triggers a fresh interactive authorization
// instead of failing the run.
func NewHTTPClient(ctx context.Context, credentialsPath, tokenPath string, logger *logging.Logger) (*http.Client, error) {
	if logger == nil {
		logger = logging.Default()
	}

	secrets, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading client secrets: %w", err)
	}
	config, err := google.ConfigFromJSON(secrets, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parsing client secrets: %w", err)
	}

	token, err := tokenFromFile(tokenPath)
	if err != nil {
		logger.Info("no usable cached token, starting authorization flow", "reason", err)
		token, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, token); err != nil {
			logger.Warn("could not cache token", "path", tokenPath, "error", err)
		}
	}

	return config.Client(ctx, token), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("malformed token cache: %w", err)
	}
	if token.RefreshToken == "" && !token.Valid() {
		return nil, fmt.Errorf("cached token expired with no refresh token")
	}
	return token, nil
}

// tokenFromWeb walks the user through the out-of-band authorization
// flow on the terminal.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	url := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following URL in a browser, authorize access, then paste the code here:\n%v\n> ", url)

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		return nil, fmt.Errorf("reading authorization code: %w", err)
	}
	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchanging authorization code: %w", err)
	}
	return token, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
