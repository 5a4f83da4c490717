package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeIntsAsDecimal(t *testing.T) {
	b, err := Serialize(int64(-42))
	require.NoError(t, err)
	assert.Equal(t, "-42", string(b))

	b, err = Serialize(uint16(7))
	require.NoError(t, err)
	assert.Equal(t, "7", string(b))

	var u uint16
	require.NoError(t, Deserialize([]byte("7"), &u))
	assert.Equal(t, uint16(7), u)
}

func TestSerializeBytesPassThrough(t *testing.T) {
	in := []byte("\x00username:jane\x00")
	b, err := Serialize(in)
	require.NoError(t, err)
	assert.Equal(t, in, b)

	var out []byte
	require.NoError(t, Deserialize(b, &out))
	assert.Equal(t, in, out)
}

func TestSerializeGob(t *testing.T) {
	in := map[string]string{"username": "jane", "_TS": "1700000000"}
	b, err := Serialize(in)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, Deserialize(b, &out))
	assert.Equal(t, in, out)
}

func TestDeserializeErrors(t *testing.T) {
	var i int
	assert.Error(t, Deserialize([]byte("ten"), &i))
	assert.Equal(t, ErrInvalidValue, Deserialize([]byte("x"), i))

	var p profile
	assert.Error(t, Deserialize([]byte("not gob"), &p))
}
