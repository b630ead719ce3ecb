// Package webhook posts graded attempts to a remote submission log, such as
// a Google Apps Script that appends rows to a course spreadsheet.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/phy132/kirchhoff/internal/store"
)

// Sheet names the receiving script routes on.
const (
	SheetEquations = "Kirchhoff_Equations"
	SheetCurrents  = "Kirchhoff_Currents"
)

const timeLayout = "2006-01-02 15:04:05"

// Client posts attempts as flat JSON objects. It implements
// store.AttemptRecorder.
type Client struct {
	url  string
	http *http.Client
}

// New creates a Client for cfg.URL.
func New(cfg Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled() {
		return nil, errors.New("webhook url is not set")
	}
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Post sends payload as JSON and expects a 200 response.
func (c *Client) Post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{
			Code:       resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) AppendEquationAttempt(ctx context.Context, data store.EquationAttemptData) error {
	eqs, err := json.Marshal(data.Equations)
	if err != nil {
		return fmt.Errorf("marshal equations: %w", err)
	}
	return c.Post(ctx, map[string]any{
		"Attempt ID":         data.ID,
		"Time Stamp":         stamp(data.Timestamp),
		"Name":               data.Name,
		"Comment":            data.Comment,
		"Set #":              strconv.Itoa(data.SetID),
		"Student Eqs (JSON)": string(eqs),
		"Result (eqs)":       data.Result,
		"sheet":              SheetEquations,
	})
}

func (c *Client) AppendCurrentAttempt(ctx context.Context, data store.CurrentAttemptData) error {
	return c.Post(ctx, map[string]any{
		"Attempt ID":   data.ID,
		"Time Stamp":   stamp(data.Timestamp),
		"Name":         data.Name,
		"Comment":      data.Comment,
		"Set #":        strconv.Itoa(data.SetID),
		"I1 (mA)":      data.Submitted[0],
		"I2 (mA)":      data.Submitted[1],
		"I3 (mA)":      data.Submitted[2],
		"I1_exp (mA)":  data.Expected[0],
		"I2_exp (mA)":  data.Expected[1],
		"I3_exp (mA)":  data.Expected[2],
		"Tolerance_mA": data.ToleranceMA,
		"Result":       data.Result,
		"sheet":        SheetCurrents,
	})
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

func stamp(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.Format(timeLayout)
}

// parseRetryAfter reads a delay-seconds Retry-After header.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
