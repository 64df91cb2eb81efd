package datastore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
)

const restPath = "/rest/v1/"

// Updater issues single row updates.
type Updater interface {
	Update(ctx context.Context, table string, fields any, match Match) error
}

// Match selects rows where Column equals Value.
type Match struct {
	Column string
	Value  string
}

func (m Match) query() url.Values {
	q := url.Values{}
	q.Set(m.Column, "eq."+m.Value)
	return q
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ Updater = (*Client)(nil)

// Update patches the rows of table selected by match with fields.
// fields is encoded as JSON; a non-2xx reply is returned as *APIError.
func (c *Client) Update(ctx context.Context, table string, fields any, match Match) error {
	if table == "" || match.Column == "" {
		return errors.Wrapf(errors.ErrInvalidRequest, "[Client Update] table and match column are required")
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("[Client Update] marshal fields: %w", err)
	}

	endpoint := c.baseURL + restPath + url.PathEscape(table) + "?" + match.query().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("[Client Update] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Prefer", "return=minimal")
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(errors.ErrMutationFailed, "[Client Update] %s: %v", table, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return decodeAPIError(resp)
}
