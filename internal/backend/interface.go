// Package backend picks and opens the key-value store that holds the billing
// documents.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cablebill/internal/store"
)

var ErrUnknownBackend = errors.New("unknown data backend")

// Kind names a document store implementation.
type Kind string

const (
	SQLiteBackend Kind = "sqlite"
	MemoryBackend Kind = "memory"
)

// Kinds lists the supported backends, persistent ones first.
var Kinds = []Kind{SQLiteBackend, MemoryBackend}

// ParseKind accepts a backend name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
	return k, nil
}

func (k Kind) String() string { return string(k) }

func (k Kind) IsValid() bool {
	return k == SQLiteBackend || k == MemoryBackend
}

// Persistent reports whether saved documents outlive the process.
func (k Kind) Persistent() bool { return k == SQLiteBackend }

// Opened is a ready document store and the function that releases it.
type Opened struct {
	Kind    Kind
	Backend store.KV
	Cleanup func() error
}

// Close runs Cleanup if one was set. Safe on a nil receiver.
func (o *Opened) Close() error {
	if o == nil || o.Cleanup == nil {
		return nil
	}
	return o.Cleanup()
}

// Opener opens the backend described by a Config.
type Opener interface {
	Open(ctx context.Context, cfg Config) (*Opened, error)
}
