package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
	"github.com/taskgrid-io/taskgrid/internal/taskmanager"
)

// ListTaskManagers returns the full registered set, without metric blobs.
func (c *Client) ListTaskManagers(ctx context.Context) (*taskmanager.Document, error) {
	return c.getTaskManagers(ctx, c.BaseURL+"/api/taskmanagers")
}

// GetTaskManager fetches one task manager by hex id, with metrics when the
// server has a snapshot for it. An unknown id yields an empty document, not
// an error.
func (c *Client) GetTaskManager(ctx context.Context, id string) (*taskmanager.Document, error) {
	return c.getTaskManagers(ctx, c.BaseURL+"/api/taskmanagers/"+id)
}

func (c *Client) getTaskManagers(ctx context.Context, url string) (*taskmanager.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}
	var doc taskmanager.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// GetClusterStatus fetches the cluster summary.
func (c *Client) GetClusterStatus(ctx context.Context) (*cluster.ClusterStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/api/status", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}
	var status cluster.ClusterStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
