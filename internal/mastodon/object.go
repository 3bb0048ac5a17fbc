package mastodon

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// Object is a read-only view over a JSON object.
type Object struct {
	root jsoniter.Any
	raw  []byte
}

func NewObject(data []byte) (Object, error) {
	const errMsg = "mastodon.NewObject"

	if !wellFormed(data) {
		return Object{}, errors.Wrap(ErrMalformedJSON, errMsg)
	}

	raw := make([]byte, len(data))
	copy(raw, data)

	root := jsoniter.Get(raw)
	if root.ValueType() != jsoniter.ObjectValue {
		return Object{}, errors.Wrap(errors.Wrap(ErrTypeMismatch, "expected json object"), errMsg)
	}

	return Object{root: root, raw: raw}, nil
}

// GetString returns the string under key. ok is false when the key is
// absent or holds null.
func (o Object) GetString(key string) (value string, ok bool, err error) {
	v := o.root.Get(key)

	switch v.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return "", false, nil
	case jsoniter.StringValue:
		return v.ToString(), true, nil
	default:
		return "", false, typeMismatch(key)
	}
}

// GetBoolean returns the boolean under key, or false when the key is
// absent or holds null.
func (o Object) GetBoolean(key string) (bool, error) {
	v := o.root.Get(key)

	switch v.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return false, nil
	case jsoniter.BoolValue:
		return v.ToBool(), nil
	default:
		return false, typeMismatch(key)
	}
}

// Raw returns a copy of the source document.
func (o Object) Raw() []byte {
	out := make([]byte, len(o.raw))
	copy(out, o.raw)

	return out
}

// wellFormed reports whether data holds exactly one JSON value, allowing
// surrounding whitespace.
func wellFormed(data []byte) bool {
	iter := jsoniter.ConfigDefault.BorrowIterator(data)
	defer jsoniter.ConfigDefault.ReturnIterator(iter)

	iter.Skip()

	switch iter.Error {
	case nil:
		iter.WhatIsNext()

		return iter.Error == io.EOF
	case io.EOF:
		return true
	default:
		return false
	}
}
