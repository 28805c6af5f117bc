package cache

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PayloadVersion changes whenever a cached record shape changes. Entries
// written under another version decode as a miss and get overwritten.
const PayloadVersion = 1

const (
	KindProducts   = "products"
	KindProduct    = "product"
	KindCategories = "categories"
)

var (
	ErrPayloadVersion = errors.New("cache payload version mismatch")
	ErrPayloadKind    = errors.New("cache payload kind mismatch")
)

type envelope struct {
	Version int             `json:"version"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

func Encode(kind string, v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed marshalling %s payload with error=%w", kind, err)
	}
	return json.Marshal(envelope{Version: PayloadVersion, Kind: kind, Data: data})
}

func Decode(raw []byte, kind string, v any) error {
	e := envelope{}
	if err := json.Unmarshal(raw, &e); err != nil {
		return fmt.Errorf("failed unmarshalling cache envelope with error=%w", err)
	}
	if e.Version != PayloadVersion {
		return fmt.Errorf("%w: got=%d want=%d", ErrPayloadVersion, e.Version, PayloadVersion)
	}
	if e.Kind != kind {
		return fmt.Errorf("%w: got=%s want=%s", ErrPayloadKind, e.Kind, kind)
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("failed unmarshalling %s payload with error=%w", kind, err)
	}
	return nil
}
