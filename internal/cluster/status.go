package cluster

import "context"

type ClusterStatus struct {
	TaskManagers []TaskManagerInfo `json:"taskmanagers"`
	TotalSlots   int               `json:"total_slots"`
	FreeSlots    int               `json:"free_slots"`
}

// GetClusterStatus summarizes the registered task managers and their slots.
func (c *etcdCluster) GetClusterStatus(ctx context.Context) (*ClusterStatus, error) {
	taskManagers, err := c.ListTaskManagers(ctx)
	if err != nil {
		return nil, err
	}
	status := &ClusterStatus{
		TaskManagers: taskManagers,
	}
	for _, tm := range taskManagers {
		status.TotalSlots += tm.SlotsNumber
		status.FreeSlots += tm.FreeSlots
	}
	return status, nil
}
