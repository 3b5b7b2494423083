package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// ParseDump decodes a browser localStorage export: one JSON object keyed by
// collection name. Values may be the JSON strings localStorage holds
// ("[{...}]") or plain JSON. Unknown keys are dropped.
func ParseDump(data []byte) (map[string][]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode dump: %w", err)
	}
	out := make(map[string][]byte, len(Keys))
	for _, key := range Keys {
		v, ok := raw[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[key] = []byte(s)
			continue
		}
		out[key] = []byte(v)
	}
	return out, nil
}

// Import copies every collection and counter from src to dst. Records are
// decoded on the way, so a malformed source fails before anything is written.
func Import(ctx context.Context, dst, src KV) (*Store, error) {
	s, err := Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	s.kv = dst
	if err := s.SaveAll(ctx); err != nil {
		return nil, fmt.Errorf("write destination: %w", err)
	}
	return s, nil
}
