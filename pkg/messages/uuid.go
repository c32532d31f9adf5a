package messages

import (
	"github.com/google/uuid"

	"github.com/bardasz/etp/pkg/etperr"
)

// Uuid is the ETP fixed(16) identifier. It travels as its raw bytes.
type Uuid [16]byte

// NewUuid returns a random (version 4) Uuid.
func NewUuid() Uuid {
	return Uuid(uuid.New())
}

// ParseUuid parses the canonical textual form.
func ParseUuid(s string) (Uuid, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Uuid{}, etperr.New("E102").WithDetailf("uuid %q", s).Wrap(err)
	}
	return Uuid(u), nil
}

// String returns the canonical textual form.
func (u Uuid) String() string {
	return uuid.UUID(u).String()
}

// IsZero reports whether every byte is zero.
func (u Uuid) IsZero() bool {
	return u == Uuid{}
}

// Native returns the fixed(16) native value.
func (u Uuid) Native() []byte {
	b := make([]byte, 16)
	copy(b, u[:])
	return b
}

// UuidFromNative converts a decoded fixed(16) value.
func UuidFromNative(v any) (Uuid, error) {
	b, ok := v.([]byte)
	if !ok || len(b) != 16 {
		return Uuid{}, etperr.New("E102").WithDetailf("Uuid: expected 16 bytes, got %T", v)
	}
	var u Uuid
	copy(u[:], b)
	return u, nil
}
