package cluster

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseIDRoundTrip(t *testing.T) {
	id := NewID()
	parsed, ok := ParseID(id.String())
	require.True(t, ok)
	require.Equal(t, id, parsed)
}

func TestParseIDMalformed(t *testing.T) {
	for _, bad := range []string{"", "0", "zz", "abc", "0a0"} {
		_, ok := ParseID(bad)
		require.False(t, ok, "%q should not parse", bad)
	}
}

func TestIDJSONHex(t *testing.T) {
	id, ok := ParseID("0a1b")
	require.True(t, ok)

	b, err := json.Marshal(TaskManagerInfo{ID: id})
	require.NoError(t, err)
	require.Contains(t, string(b), `"id":"0a1b"`)

	var out TaskManagerInfo
	require.NoError(t, json.Unmarshal(b, &out))
	require.Equal(t, id, out.ID)
}
