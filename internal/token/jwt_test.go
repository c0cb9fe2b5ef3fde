package token

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rahulthapa9024/basic-app/internal/model"
)

func testUser() model.User {
	return model.User{ID: uuid.New(), Email: "ada@example.com", DisplayName: "Ada"}
}

func TestJWT_IssueVerify_Roundtrip(t *testing.T) {
	j := NewJWT("secret", 7*24*time.Hour)
	u := testUser()

	tok, issued, err := j.Issue(u)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, issued.ExpiresAt.Sub(issued.IssuedAt))

	got, err := j.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)
	assert.Equal(t, u.DisplayName, got.DisplayName)
	assert.Equal(t, u.ID, got.UserID)
	assert.True(t, issued.ExpiresAt.Equal(got.ExpiresAt))
}

func TestJWT_ClaimNames(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, _, err := j.Issue(testUser())
	require.NoError(t, err)

	raw := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tok, raw)
	require.NoError(t, err)

	for _, k := range []string{"emailId", "displayName", "userId", "iat", "exp"} {
		assert.Contains(t, raw, k)
	}
}

func TestJWT_Verify_Failures(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, _, err := j.Issue(testUser())
	require.NoError(t, err)

	expired := NewJWT("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredTok, _, err := expired.Issue(testUser())
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		manager *JWT
		wantErr error
	}{
		{name: "wrong secret", token: tok, manager: NewJWT("other", time.Hour), wantErr: model.ErrInvalidSignature},
		{name: "tampered", token: tok[:len(tok)-2] + "xx", manager: j, wantErr: model.ErrInvalidSignature},
		{name: "garbage", token: "not-a-token", manager: j, wantErr: model.ErrInvalidSignature},
		{name: "alg none", token: noneTok, manager: j, wantErr: model.ErrInvalidSignature},
		{name: "expired", token: expiredTok, manager: j, wantErr: model.ErrTokenExpired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tt.manager.Verify(tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJWT_Decode(t *testing.T) {
	j := NewJWT("secret", time.Hour)
	tok, issued, err := j.Issue(testUser())
	require.NoError(t, err)

	// Signature is not checked.
	got, err := NewJWT("different", time.Hour).Decode(tok)
	require.NoError(t, err)
	assert.True(t, issued.ExpiresAt.Equal(got.ExpiresAt))

	_, err = j.Decode("a.b")
	assert.ErrorIs(t, err, model.ErrMalformedToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{EmailID: "x"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	got, err = j.Decode(noExp)
	require.NoError(t, err)
	assert.True(t, got.ExpiresAt.IsZero())
	assert.True(t, strings.Count(noExp, ".") == 2)
}
