package cluster

import (
	"context"
	"fmt"
	"path"
	"strings"

	clientv3 "go.etcd.io/etcd/client/v3"
)

// PublishMetrics writes one counter key per metric name under the task
// manager's metrics prefix. The keys share the registration lease, so a dead
// task manager's counters expire together with its record.
func (c *etcdCluster) PublishMetrics(ctx context.Context, id ID, counters map[string]string) error {
	resp, err := c.client.Get(ctx, c.taskManagerKey(id))
	if err != nil {
		return err
	}
	if len(resp.Kvs) == 0 {
		return fmt.Errorf("task manager %s not found", id)
	}
	leaseID := clientv3.LeaseID(resp.Kvs[0].Lease)

	base := path.Join(c.cfg.Prefix, "metrics", id.String())
	ops := make([]clientv3.Op, 0, len(counters))
	for name, value := range counters {
		ops = append(ops, clientv3.OpPut(base+"/"+name, value, clientv3.WithLease(leaseID)))
	}
	_, err = c.client.Txn(ctx).Then(ops...).Commit()
	return err
}

// AllMetricCounters returns every published counter, grouped by task manager
// id (hex form). Task managers without counters simply do not appear.
func (c *etcdCluster) AllMetricCounters(ctx context.Context) (map[string]map[string]string, error) {
	prefix := path.Join(c.cfg.Prefix, "metrics") + "/"
	resp, err := c.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, err
	}
	out := make(map[string]map[string]string)
	for _, kv := range resp.Kvs {
		rest := strings.TrimPrefix(string(kv.Key), prefix)
		id, name, ok := strings.Cut(rest, "/")
		if !ok || id == "" || name == "" {
			continue
		}
		counters, ok := out[id]
		if !ok {
			counters = make(map[string]string)
			out[id] = counters
		}
		counters[name] = string(kv.Value)
	}
	return out, nil
}
