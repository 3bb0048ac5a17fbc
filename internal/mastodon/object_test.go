package mastodon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectAccessors(t *testing.T) {
	obj, err := NewObject([]byte(`{"s":"v","n":null,"b":true,"num":1}`))
	require.NoError(t, err)

	v, ok, err := obj.GetString("s")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	_, ok, err = obj.GetString("n")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = obj.GetString("absent")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = obj.GetString("num")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	b, err := obj.GetBoolean("b")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = obj.GetBoolean("s")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestNewObjectRejectsNonObjects(t *testing.T) {
	for _, input := range []string{`null`, `"x"`, `[1]`, `3`} {
		_, err := NewObject([]byte(input))
		assert.ErrorIs(t, err, ErrTypeMismatch, input)
	}
}

func TestNewObjectRejectsTrailingData(t *testing.T) {
	inputs := []string{
		`{"shortcode":"a","url":"u","static_url":"s"} trailing`,
		`{"a":1}{"b":2}`,
		`{"a":1},`,
		`{"a":`,
		``,
	}

	for _, input := range inputs {
		_, err := NewObject([]byte(input))
		assert.ErrorIs(t, err, ErrMalformedJSON, input)
	}

	obj, err := NewObject([]byte(" {\"a\":\"b\"}\n "))
	require.NoError(t, err)

	v, ok, err := obj.GetString("a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}
