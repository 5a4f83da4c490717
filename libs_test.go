package joindin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignVerify(t *testing.T) {
	signer := NewSigner("0123456789abcdef")
	sig := signer.Sign("\x00username:jane\x00")
	assert.Len(t, sig, 40)
	assert.True(t, signer.Verify("\x00username:jane\x00", sig))
	assert.False(t, signer.Verify("\x00username:john\x00", sig))
	assert.False(t, NewSigner("another").Verify("\x00username:jane\x00", sig))
}
