package joindin

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"io"
)

// Signer signs cookie payloads with app.secret.
type Signer struct {
	secretKey []byte
}

func NewSigner(secret string) Signer {
	return Signer{secretKey: []byte(secret)}
}

// Sign a given string with the app-configured secret key.
// Return the signature in hex.
func (s Signer) Sign(message string) string {
	mac := hmac.New(sha1.New, s.secretKey)
	_, _ = io.WriteString(mac, message)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify returns true if the given signature is correct for the given message.
// e.g. it matches what we generate with Sign()
func (s Signer) Verify(message, sig string) bool {
	return hmac.Equal([]byte(sig), []byte(s.Sign(message)))
}
