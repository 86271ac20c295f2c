package cluster

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// ID is the opaque binary identifier of a task manager. Its external
// representation (API paths, etcd keys, JSON) is always the hex encoding.
type ID []byte

func NewID() ID {
	u := uuid.New()
	return ID(u[:])
}

// ParseID decodes the external hex form. Malformed input is reported via the
// bool, not an error: callers treat it as "no such task manager".
func ParseID(s string) (ID, bool) {
	b, err := hex.DecodeString(s)
	if err != nil || len(b) == 0 {
		return nil, false
	}
	return ID(b), true
}

func (id ID) String() string {
	return hex.EncodeToString(id)
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	*id = ID(b)
	return nil
}
