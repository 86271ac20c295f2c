package taskmanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskgrid-io/taskgrid/internal/cluster"
)

type fakeRegistry struct {
	infos   []cluster.TaskManagerInfo
	listErr error
	getErr  error
}

func (f *fakeRegistry) ListTaskManagers(ctx context.Context) ([]cluster.TaskManagerInfo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.infos, nil
}

func (f *fakeRegistry) GetTaskManager(ctx context.Context, id cluster.ID) (cluster.TaskManagerInfo, bool, error) {
	if f.getErr != nil {
		return cluster.TaskManagerInfo{}, false, f.getErr
	}
	for _, info := range f.infos {
		if info.ID.String() == id.String() {
			return info, true, nil
		}
	}
	return cluster.TaskManagerInfo{}, false, nil
}

func registryWith(ids ...string) *fakeRegistry {
	reg := &fakeRegistry{}
	for _, s := range ids {
		id, ok := cluster.ParseID(s)
		if !ok {
			panic("bad test id: " + s)
		}
		reg.infos = append(reg.infos, cluster.TaskManagerInfo{ID: id, Address: "tm-" + s})
	}
	return reg
}

func TestResolveAll(t *testing.T) {
	resolver := NewResolver(registryWith("0a", "0b", "0c"), time.Second)

	records, err := resolver.Resolve(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 3)
}

func TestResolveByID(t *testing.T) {
	resolver := NewResolver(registryWith("0a", "0b"), time.Second)

	records, err := resolver.Resolve(context.Background(), "0b")
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "0b", records[0].ID.String())
}

func TestResolveMalformedID(t *testing.T) {
	resolver := NewResolver(registryWith("0a"), time.Second)

	for _, bad := range []string{"zz", "abc", "0a0", "not-hex-at-all"} {
		records, err := resolver.Resolve(context.Background(), bad)
		require.NoError(t, err, "malformed id %q must not be an error", bad)
		require.Empty(t, records)
	}
}

func TestResolveUnknownID(t *testing.T) {
	resolver := NewResolver(registryWith("0a"), time.Second)

	records, err := resolver.Resolve(context.Background(), "0b")
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestResolveListFailure(t *testing.T) {
	reg := &fakeRegistry{listErr: errors.New("etcd unreachable")}
	resolver := NewResolver(reg, time.Second)

	records, err := resolver.Resolve(context.Background(), "")
	require.Error(t, err)
	require.Nil(t, records)
	require.Contains(t, err.Error(), "failed to fetch list of all task managers")
	require.Contains(t, err.Error(), "etcd unreachable")
}

func TestResolveGetFailure(t *testing.T) {
	reg := registryWith("0a")
	reg.getErr = errors.New("timeout")
	resolver := NewResolver(reg, time.Second)

	records, err := resolver.Resolve(context.Background(), "0a")
	require.Error(t, err)
	require.Nil(t, records)
	require.Contains(t, err.Error(), "failed to fetch list of all task managers")
}

func TestResolveNoRegistry(t *testing.T) {
	resolver := NewResolver(nil, time.Second)

	_, err := resolver.Resolve(context.Background(), "")
	require.ErrorIs(t, err, ErrNoRegistry)

	_, err = resolver.Resolve(context.Background(), "0a")
	require.ErrorIs(t, err, ErrNoRegistry)
}
