package cluster

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// Lease TTL for task manager registrations. A task manager that stops
// heartbeating disappears from the registry (and its metric counters with
// it) once the lease expires.
const taskManagerLeaseTTL = 15

// TaskManagerInfo is a point-in-time snapshot of one task manager's identity
// and resource descriptors. Readers get copies, never live references.
type TaskManagerInfo struct {
	ID             ID        `json:"id"`
	Address        string    `json:"address"`
	DataPort       int       `json:"data_port"`
	LastHeartbeat  time.Time `json:"last_heartbeat"`
	SlotsNumber    int       `json:"slots_number"`
	FreeSlots      int       `json:"free_slots"`
	CPUCores       float64   `json:"cpu_cores"`
	PhysicalMemory int64     `json:"physical_memory"`
	FreeMemory     int64     `json:"free_memory"`
	ManagedMemory  int64     `json:"managed_memory"`
}

func (c *etcdCluster) taskManagerKey(id ID) string {
	return path.Join(c.cfg.Prefix, "taskmanagers", id.String())
}

func (c *etcdCluster) RegisterTaskManager(ctx context.Context, info TaskManagerInfo) (ID, error) {
	if len(info.ID) == 0 {
		info.ID = NewID()
	}
	info.LastHeartbeat = time.Now().UTC()

	lease, err := c.client.Grant(ctx, taskManagerLeaseTTL)
	if err != nil {
		return nil, err
	}
	_, err = c.client.Put(ctx, c.taskManagerKey(info.ID), mustJSON(info), clientv3.WithLease(lease.ID))
	if err != nil {
		return nil, err
	}
	return info.ID, nil
}

func (c *etcdCluster) ListTaskManagers(ctx context.Context) ([]TaskManagerInfo, error) {
	prefix := path.Join(c.cfg.Prefix, "taskmanagers") + "/"
	resp, err := c.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}
	infos := make([]TaskManagerInfo, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var info TaskManagerInfo
		if err := json.Unmarshal(kv.Value, &info); err == nil {
			infos = append(infos, info)
		}
	}
	return infos, nil
}

func (c *etcdCluster) GetTaskManager(ctx context.Context, id ID) (TaskManagerInfo, bool, error) {
	resp, err := c.client.Get(ctx, c.taskManagerKey(id))
	if err != nil {
		return TaskManagerInfo{}, false, err
	}
	if len(resp.Kvs) == 0 {
		return TaskManagerInfo{}, false, nil
	}
	var info TaskManagerInfo
	if err := json.Unmarshal(resp.Kvs[0].Value, &info); err != nil {
		return TaskManagerInfo{}, false, err
	}
	return info, true, nil
}

// Heartbeat refreshes the registration lease and records the heartbeat
// instant in the stored record.
func (c *etcdCluster) Heartbeat(ctx context.Context, id ID) error {
	key := c.taskManagerKey(id)
	resp, err := c.client.Get(ctx, key)
	if err != nil {
		return err
	}
	if len(resp.Kvs) == 0 {
		return fmt.Errorf("task manager %s not found", id)
	}
	leaseID := clientv3.LeaseID(resp.Kvs[0].Lease)
	if _, err := c.client.KeepAliveOnce(ctx, leaseID); err != nil {
		return err
	}

	var info TaskManagerInfo
	if err := json.Unmarshal(resp.Kvs[0].Value, &info); err != nil {
		return err
	}
	info.LastHeartbeat = time.Now().UTC()
	_, err = c.client.Put(ctx, key, mustJSON(info), clientv3.WithLease(leaseID))
	return err
}
