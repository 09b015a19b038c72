package invitesdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal typed client for the invite service. Methods return
// the decoded response body together with the HTTP status code; callers
// inspect the Valid/Success flags and Reason for the outcome.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// IssueInvite mints a new invite using the given psychologist bearer
// token. A non-2xx status yields an error describing the failure.
func (c *Client) IssueInvite(ctx context.Context, bearer string) (IssueInviteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/invites", nil)
	if err != nil {
		return IssueInviteResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return IssueInviteResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return IssueInviteResponse{}, fmt.Errorf(
			"issue invite: status %d: %s", resp.StatusCode, apiErr.Error,
		)
	}

	var out IssueInviteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return IssueInviteResponse{}, err
	}
	return out, nil
}

// ValidateInvite checks redeemability of a token.
func (c *Client) ValidateInvite(ctx context.Context, token string) (ValidateInviteResponse, int, error) {
	var out ValidateInviteResponse
	status, err := c.postJSON(ctx, "/v1/invites/validate", ValidateInviteRequest{Token: token}, &out)
	return out, status, err
}

// ConsumeInvite redeems a token, registering the patient.
func (c *Client) ConsumeInvite(ctx context.Context, req ConsumeInviteRequest) (ConsumeInviteResponse, int, error) {
	var out ConsumeInviteResponse
	status, err := c.postJSON(ctx, "/v1/invites/consume", req, &out)
	return out, status, err
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) (int, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}
