package attendance

import (
	"encoding/base64"
	"testing"
	"time"

	attendanceerrors "hrm-core/internal/attendance/errors"

	"github.com/stretchr/testify/assert"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	issued := time.Now().UnixMilli()
	token, err := codec.Encode(TokenPayload{EmployeeID: 42, IssuedAt: issued})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	payload, err := codec.Decode(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), payload.EmployeeID)
	assert.Equal(t, issued, payload.IssuedAt)
}

func TestTokenCodec_RejectsTamperedPayload(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	token, err := codec.Encode(TokenPayload{EmployeeID: 42, IssuedAt: time.Now().UnixMilli()})
	assert.NoError(t, err)

	// Swap the payload for another employee id while keeping the MAC.
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"employee_id":99,"issued_at":1}`))
	_, mac, _ := splitToken(token)

	_, err = codec.Decode(forged + "." + mac)
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenSignature)
}

func TestTokenCodec_RejectsWrongSecret(t *testing.T) {
	codec := NewTokenCodec([]byte("server-secret"))
	other := NewTokenCodec([]byte("attacker-secret"))

	token, err := other.Encode(TokenPayload{EmployeeID: 42, IssuedAt: time.Now().UnixMilli()})
	assert.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenSignature)
}

func TestTokenCodec_RejectsMalformed(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	cases := []string{
		"",
		"no-separator",
		".only-mac",
		"only-payload.",
		"!!not-base64!!.!!not-base64!!",
	}
	for _, tc := range cases {
		_, err := codec.Decode(tc)
		assert.ErrorIs(t, err, attendanceerrors.ErrTokenMalformed, "token: %q", tc)
	}
}

func TestTokenCodec_RejectsNonPositiveFields(t *testing.T) {
	codec := NewTokenCodec([]byte("test-secret"))

	token, err := codec.Encode(TokenPayload{EmployeeID: 0, IssuedAt: time.Now().UnixMilli()})
	assert.NoError(t, err)

	_, err = codec.Decode(token)
	assert.ErrorIs(t, err, attendanceerrors.ErrTokenMalformed)
}

func splitToken(token string) (string, string, bool) {
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			return token[:i], token[i+1:], true
		}
	}
	return "", "", false
}
