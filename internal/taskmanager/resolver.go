// Package taskmanager answers the monitoring query "what task managers
// exist, and what is their current resource state?": it resolves which
// registered task managers to report and assembles the response document.
package taskmanager

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
)

// ErrNoRegistry is returned when the resolver has no registry connection to
// query.
var ErrNoRegistry = errors.New("no connection to the cluster registry is available")

// Registry is the slice of the cluster surface the resolver needs.
type Registry interface {
	ListTaskManagers(ctx context.Context) ([]cluster.TaskManagerInfo, error)
	GetTaskManager(ctx context.Context, id cluster.ID) (cluster.TaskManagerInfo, bool, error)
}

// Resolver determines the set of task manager records to report for a
// request. Stateless across requests; every Resolve is a fresh bounded
// round trip to the registry.
type Resolver struct {
	registry Registry
	timeout  time.Duration
}

func NewResolver(registry Registry, timeout time.Duration) *Resolver {
	return &Resolver{registry: registry, timeout: timeout}
}

// Resolve returns the records for requestedID, or all registered task
// managers when requestedID is empty.
//
// A malformed or unknown id yields an empty slice and no error: whether one
// specific task manager or all of them are requested, the same (possibly
// empty) array is serialized downstream. Registry failures and timeouts are
// fatal for the request and never accompany a partial result.
func (r *Resolver) Resolve(ctx context.Context, requestedID string) ([]cluster.TaskManagerInfo, error) {
	if r.registry == nil {
		return nil, ErrNoRegistry
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if requestedID == "" {
		instances, err := r.registry.ListTaskManagers(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch list of all task managers: %w", err)
		}
		return instances, nil
	}

	id, ok := cluster.ParseID(requestedID)
	if !ok {
		// Invalid hex string. Keep the list empty.
		return []cluster.TaskManagerInfo{}, nil
	}
	info, found, err := r.registry.GetTaskManager(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch list of all task managers: %w", err)
	}
	if !found {
		return []cluster.TaskManagerInfo{}, nil
	}
	return []cluster.TaskManagerInfo{info}, nil
}
