package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"timetracker/internal/config"
	"timetracker/internal/core/domain"
	"timetracker/internal/core/ports"
)

// StartedLayout is the timestamp form the worklog API accepts.
const StartedLayout = "2006-01-02T15:04:05.000-0700"

const defaultTimeout = 30 * time.Second

// Client posts worklogs to a Jira Cloud site.
type Client struct {
	baseURL string
	email   string
	token   string
	client  *http.Client
}

type ClientOption func(*Client)

// WithBaseURL overrides the https://{domain} base, mainly for tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the transport client, e.g. to change the timeout.
// Basic auth still applies; an OAuth token does not.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient builds a client from stored credentials. An OAuth access token
// takes precedence over the email/API token pair.
func NewClient(ctx context.Context, creds config.JiraCredentials, opts ...ClientOption) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: "https://" + strings.TrimSpace(creds.Domain),
	}

	if token := strings.TrimSpace(creds.OAuthToken); token != "" {
		httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
		httpClient.Timeout = defaultTimeout
		c.client = httpClient
	} else {
		c.email = strings.TrimSpace(creds.Email)
		c.token = strings.TrimSpace(creds.APIToken)
		c.client = &http.Client{Timeout: defaultTimeout}
	}

	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

var _ ports.WorklogGateway = (*Client)(nil)

type worklogPayload struct {
	Comment          document `json:"comment"`
	Started          string   `json:"started"`
	TimeSpentSeconds int64    `json:"timeSpentSeconds"`
}

// document is the Atlassian Document Format body of a worklog comment.
type document struct {
	Type    string      `json:"type"`
	Version int         `json:"version"`
	Content []paragraph `json:"content"`
}

type paragraph struct {
	Type    string `json:"type"`
	Content []text `json:"content"`
}

type text struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type worklogResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func newWorklogPayload(req ports.WorklogRequest) worklogPayload {
	return worklogPayload{
		Comment: document{
			Type:    "doc",
			Version: 1,
			Content: []paragraph{{
				Type:    "paragraph",
				Content: []text{{Type: "text", Text: req.Comment}},
			}},
		},
		Started:          req.Started.Local().Format(StartedLayout),
		TimeSpentSeconds: req.Seconds,
	}
}

// PostWorklog records req against its issue and returns the worklog id.
// Only a 201 response counts as success.
func (c *Client) PostWorklog(ctx context.Context, req ports.WorklogRequest) (string, error) {
	if strings.TrimSpace(req.IssueKey) == "" {
		return "", domain.ErrIssueKeyRequired
	}

	body, err := json.Marshal(newWorklogPayload(req))
	if err != nil {
		return "", fmt.Errorf("marshal worklog: %w", err)
	}

	endpoint := fmt.Sprintf("%s/rest/api/3/issue/%s/worklog", c.baseURL, url.PathEscape(req.IssueKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create worklog request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	if c.email != "" {
		httpReq.SetBasicAuth(c.email, c.token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: post worklog to %s: %w", domain.ErrSyncFailed, req.IssueKey, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read worklog response: %w", domain.ErrSyncFailed, err)
	}

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("%w: %s: status %d: %s", domain.ErrSyncFailed, req.IssueKey, resp.StatusCode, describeError(respBody))
	}

	var created worklogResponse
	if err := json.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("%w: decode worklog response: %w", domain.ErrSyncFailed, err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("%w: worklog response has no id", domain.ErrSyncFailed)
	}

	zap.L().Info("logged work to jira", zap.String("issue_key", req.IssueKey), zap.String("worklog_id", created.ID))
	return created.ID, nil
}

func describeError(body []byte) string {
	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		messages := append([]string(nil), parsed.ErrorMessages...)
		for field, message := range parsed.Errors {
			messages = append(messages, field+": "+message)
		}
		if len(messages) > 0 {
			return strings.Join(messages, "; ")
		}
	}
	return strings.TrimSpace(string(body))
}
