package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// apiBase is the Todoist Sync API base URL (overridable in tests).
var apiBase = "https://api.todoist.com/sync/v9"

// Filter narrows the task list returned by Tasks. Empty fields match
// everything.
type Filter struct {
	TaskID    string
	ProjectID string
}

func (f Filter) matches(t Task) bool {
	if f.TaskID != "" && t.ID != f.TaskID {
		return false
	}
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	return true
}

// command is one entry in a Sync API command batch. The API requires a
// client-generated uuid per command for dedupe.
type command struct {
	Type string         `json:"type"`
	UUID string         `json:"uuid"`
	Args map[string]any `json:"args"`
}

// Client talks to the Todoist Sync API and serves reads from the local
// cache, so migrate can run offline after a synchronize.
type Client struct {
	apiToken string
	httpc    *http.Client
	cache    *Cache

	pending []command
}

// NewClient builds a client over an existing cache. httpc may be nil.
func NewClient(apiToken string, cache *Cache, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{apiToken: apiToken, httpc: httpc, cache: cache}
}

type syncResponse struct {
	SyncToken string    `json:"sync_token"`
	Items     []Task    `json:"items"`
	Projects  []Project `json:"projects"`
	Labels    []Label   `json:"labels"`
}

// Sync performs a full sync and persists the snapshot to the cache.
func (c *Client) Sync(ctx context.Context) error {
	form := url.Values{
		"sync_token":     {"*"},
		"resource_types": {`["items","projects","labels"]`},
	}
	resp, err := c.post(ctx, form)
	if err != nil {
		return err
	}

	c.cache.Replace(resp.SyncToken, resp.Items, resp.Projects, resp.Labels)
	if err := c.cache.Save(); err != nil {
		return fmt.Errorf("todoist: save cache: %w", err)
	}
	return nil
}

// Tasks returns the cached tasks matching filter.
func (c *Client) Tasks(filter Filter) ([]Task, error) {
	var out []Task
	for _, t := range c.cache.Tasks() {
		if filter.matches(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Project resolves a project id from the cache. A nil result with nil error
// means the id is unknown.
func (c *Client) Project(id string) (*Project, error) {
	if p, ok := c.cache.Project(id); ok {
		return &p, nil
	}
	return nil, nil
}

// Label resolves a label id from the cache.
func (c *Client) Label(id string) (*Label, error) {
	if l, ok := c.cache.Label(id); ok {
		return &l, nil
	}
	return nil, nil
}

// Close queues an item_close command for the next Commit.
func (c *Client) Close(id string) {
	c.pending = append(c.pending, command{
		Type: "item_close",
		UUID: uuid.NewString(),
		Args: map[string]any{"id": id},
	})
}

// Commit posts all queued commands in a single batch, then refreshes the
// cache. It is a no-op when nothing is queued.
func (c *Client) Commit(ctx context.Context) error {
	if len(c.pending) == 0 {
		return nil
	}

	cmds, err := json.Marshal(c.pending)
	if err != nil {
		return fmt.Errorf("todoist: encode commands: %w", err)
	}
	form := url.Values{"commands": {string(cmds)}}
	if _, err := c.post(ctx, form); err != nil {
		return err
	}
	c.pending = nil

	return c.Sync(ctx)
}

func (c *Client) post(ctx context.Context, form url.Values) (*syncResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBase+"/sync",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("todoist: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("todoist: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("todoist API returned %d: %s", resp.StatusCode, string(body))
	}

	var sr syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("todoist: decode response: %w", err)
	}
	return &sr, nil
}
