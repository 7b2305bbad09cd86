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
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/AleutianAI/a11ybuild/pkg/logging"
)

// RemoteError wraps a spreadsheet API failure with enough context to
// print a single useful diagnostic line.
type RemoteError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("sheets %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("sheets %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Transient reports whether the failure is the kind the caller may
// retry on a later run (quota exhaustion or server-side trouble).
func (e *RemoteError) Transient() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

func wrapRemote(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &RemoteError{Op: op, StatusCode: gerr.Code, Err: err}
	}
	return &RemoteError{Op: op, Err: err}
}

// Client is a rate-limited wrapper around the Sheets service bound to
// one spreadsheet. The limiter keeps bursts of snapshot reads and the
// batch update under the per-user write quota.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
	logger        *logging.Logger
}

// NewClient builds a client from an authorized HTTP client.
func NewClient(ctx context.Context, httpClient *http.Client, spreadsheetID string, logger *logging.Logger) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	svc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		limiter:       rate.NewLimiter(rate.Every(time.Second), 5),
		logger:        logger,
	}, nil
}

func (c *Client) wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// Get fetches the spreadsheet metadata.
func (c *Client) Get(ctx context.Context) (*sheets.Spreadsheet, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, wrapRemote("spreadsheets.get", err)
	}
	return ss, nil
}

// GetValues fetches cell values for an A1 range.
func (c *Client) GetValues(ctx context.Context, a1Range string) (*sheets.ValueRange, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, wrapRemote("spreadsheets.values.get", err)
	}
	return vr, nil
}

// GetFormulaValues fetches cell values for an A1 range with formulas
// rendered as entered, so fetched cells compare directly against the
// planned grid.
func (c *Client) GetFormulaValues(ctx context.Context, a1Range string) (*sheets.ValueRange, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, a1Range).
		ValueRenderOption("FORMULA").Context(ctx).Do()
	if err != nil {
		return nil, wrapRemote("spreadsheets.values.get", err)
	}
	return vr, nil
}

// BatchUpdate submits the full request plan in one round trip. The API
// applies the batch atomically, so a failure leaves the workbook as it
// was.
func (c *Client) BatchUpdate(ctx context.Context, requests []*sheets.Request) error {
	if len(requests) == 0 {
		c.logger.Info("no spreadsheet changes to apply")
		return nil
	}
	if err := c.wait(ctx); err != nil {
		return err
	}
	c.logger.Info("submitting batch update", "requests", len(requests))
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	return wrapRemote("spreadsheets.batchUpdate", err)
}
