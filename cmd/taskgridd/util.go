package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskgrid-io/taskgrid/cmd/taskgridd/config"
	"github.com/taskgrid-io/taskgrid/internal/cluster"
)

func newCluster(cfg *config.ClusterConfig) (cluster.Cluster, error) {
	hostname, _ := os.Hostname()
	if cfg.Node.ID == "" {
		cfg.Node.ID = hostname
	}

	etcdPrefix := cfg.Etcd.Prefix
	if etcdPrefix == "" {
		etcdPrefix = "/taskgrid"
	}

	return cluster.NewEtcdCluster(cluster.EtcdConfig{
		Endpoints:   cfg.Etcd.Endpoints,
		Username:    cfg.Etcd.Username,
		Password:    cfg.Etcd.Password,
		Prefix:      etcdPrefix,
		DialTimeout: 5 * time.Second,
	})
}

func cmdContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		cancel()
	}()
	return ctx
}
