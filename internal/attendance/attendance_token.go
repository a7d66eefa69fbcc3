package attendance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	attendanceerrors "hrm-core/internal/attendance/errors"
)

// TokenPayload is the rotating attendance credential. It only ever exists in
// transit between the issuing device and the verifier.
type TokenPayload struct {
	EmployeeID int64 `json:"employee_id"`
	IssuedAt   int64 `json:"issued_at"` // epoch millis
}

// TokenCodec signs and verifies attendance tokens. The wire form is
// base64url(payload) + "." + base64url(hmac-sha256), so a token cannot be
// forged for an arbitrary employee id without the server secret.
type TokenCodec struct {
	secret []byte
}

func NewTokenCodec(secret []byte) *TokenCodec {
	return &TokenCodec{secret: secret}
}

func (c *TokenCodec) Encode(p TokenPayload) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(body)
	return encoded + "." + c.sign(encoded), nil
}

// Decode checks structure first, then the MAC, and only then exposes the
// payload. Expiry is the verifier's concern, not the codec's.
func (c *TokenCodec) Decode(token string) (TokenPayload, error) {
	encoded, mac, found := strings.Cut(token, ".")
	if !found || encoded == "" || mac == "" {
		return TokenPayload{}, attendanceerrors.ErrTokenMalformed
	}

	body, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return TokenPayload{}, attendanceerrors.ErrTokenMalformed
	}

	if !hmac.Equal([]byte(c.sign(encoded)), []byte(mac)) {
		return TokenPayload{}, attendanceerrors.ErrTokenSignature
	}

	var p TokenPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return TokenPayload{}, attendanceerrors.ErrTokenMalformed
	}
	if p.EmployeeID <= 0 || p.IssuedAt <= 0 {
		return TokenPayload{}, attendanceerrors.ErrTokenMalformed
	}

	return p, nil
}

func (c *TokenCodec) sign(encoded string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(encoded))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
