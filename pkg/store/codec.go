package store

import (
	"fmt"

	"github.com/golang/snappy"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encode packs elements into a snappy compressed protobuf ListValue.
// Elements must be representable by structpb.NewValue. Numbers
// come back from Decode as float64.
func Encode(vs []any) ([]byte, error) {
	lv, err := structpb.NewList(vs)
	if err != nil {
		return nil, fmt.Errorf("invalid element: %w", err)
	}
	b, err := proto.Marshal(lv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return snappy.Encode(nil, b), nil
}

// Decode reverses Encode.
func Decode(b []byte) ([]any, error) {
	raw, err := snappy.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}
	lv := new(structpb.ListValue)
	if err := proto.Unmarshal(raw, lv); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return lv.AsSlice(), nil
}
