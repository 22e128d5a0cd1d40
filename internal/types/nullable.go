package types

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Nullable distinguishes an absent JSON key (Set == false) from an explicit
// null (Set == true, Value == nil). Numeric values may also arrive as strings,
// and an empty string is read as null, which is what HTML form inputs send.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a Nullable that is set to null.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// Some returns a Nullable holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	n.Value = nil

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var v T
	err := json.Unmarshal(data, &v)
	if err == nil {
		n.Value = &v
		return nil
	}

	// Retry quoted numbers such as "12" or "2.5".
	var s string
	if json.Unmarshal(data, &s) != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if _, perr := strconv.ParseFloat(s, 64); perr != nil {
		return err
	}
	if uerr := json.Unmarshal([]byte(s), &v); uerr != nil {
		return uerr
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}

// Ptr returns the held value or nil.
func (n Nullable[T]) Ptr() *T { return n.Value }
