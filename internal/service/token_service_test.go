package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rahulthapa9024/basic-app/internal/mocks"
	"github.com/rahulthapa9024/basic-app/internal/model"
	"github.com/rahulthapa9024/basic-app/internal/testutil"
)

func TestTokenService_Authenticate(t *testing.T) {
	ctx := context.Background()
	claims := model.SessionClaims{Email: "a@b.c", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name    string
		token   string
		setup   func(m *mocks.TokenManager, r *mocks.RevocationStore)
		wantErr error
	}{
		{
			name:    "empty token",
			token:   "",
			setup:   func(*mocks.TokenManager, *mocks.RevocationStore) {},
			wantErr: model.ErrNoToken,
		},
		{
			name:  "valid",
			token: "good",
			setup: func(m *mocks.TokenManager, r *mocks.RevocationStore) {
				m.On("Verify", "good").Return(claims, nil)
				r.On("IsBlocked", mock.Anything, "good").Return(false, nil)
			},
		},
		{
			name:  "expired",
			token: "old",
			setup: func(m *mocks.TokenManager, r *mocks.RevocationStore) {
				m.On("Verify", "old").Return(model.SessionClaims{}, model.ErrTokenExpired)
			},
			wantErr: model.ErrInvalidToken,
		},
		{
			name:  "revoked",
			token: "revoked",
			setup: func(m *mocks.TokenManager, r *mocks.RevocationStore) {
				m.On("Verify", "revoked").Return(claims, nil)
				r.On("IsBlocked", mock.Anything, "revoked").Return(true, nil)
			},
			wantErr: model.ErrInvalidToken,
		},
		{
			name:  "missing email claim",
			token: "anonymous",
			setup: func(m *mocks.TokenManager, r *mocks.RevocationStore) {
				m.On("Verify", "anonymous").Return(model.SessionClaims{UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour)}, nil)
			},
			wantErr: model.ErrInvalidToken,
		},
		{
			name:  "registry down",
			token: "good",
			setup: func(m *mocks.TokenManager, r *mocks.RevocationStore) {
				m.On("Verify", "good").Return(claims, nil)
				r.On("IsBlocked", mock.Anything, "good").Return(false, model.ErrRegistryUnavailable)
			},
			wantErr: model.ErrRegistryUnavailable,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := mocks.NewTokenManager(t)
			r := mocks.NewRevocationStore(t)
			tt.setup(m, r)
			s := NewTokenService(m, r, testutil.MakeNoopLogger())

			got, err := s.Authenticate(ctx, tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, claims, got)
		})
	}
}

func TestTokenService_Revoke(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	t.Run("blocks until exp", func(t *testing.T) {
		m := mocks.NewTokenManager(t)
		r := mocks.NewRevocationStore(t)
		m.On("Decode", "tok").Return(model.SessionClaims{ExpiresAt: exp}, nil)
		r.On("Block", mock.Anything, "tok", exp).Return(nil)

		require.NoError(t, NewTokenService(m, r, testutil.MakeNoopLogger()).Revoke(ctx, "tok"))
	})

	t.Run("no token", func(t *testing.T) {
		s := NewTokenService(mocks.NewTokenManager(t), mocks.NewRevocationStore(t), testutil.MakeNoopLogger())
		assert.ErrorIs(t, s.Revoke(ctx, ""), model.ErrNoToken)
	})

	t.Run("undecodable", func(t *testing.T) {
		m := mocks.NewTokenManager(t)
		m.On("Decode", "junk").Return(model.SessionClaims{}, errors.New("bad segments"))

		err := NewTokenService(m, mocks.NewRevocationStore(t), testutil.MakeNoopLogger()).Revoke(ctx, "junk")
		assert.ErrorIs(t, err, model.ErrMalformedToken)
	})

	t.Run("missing exp", func(t *testing.T) {
		m := mocks.NewTokenManager(t)
		m.On("Decode", "noexp").Return(model.SessionClaims{Email: "a@b.c"}, nil)

		err := NewTokenService(m, mocks.NewRevocationStore(t), testutil.MakeNoopLogger()).Revoke(ctx, "noexp")
		assert.ErrorIs(t, err, model.ErrMalformedToken)
	})

	t.Run("registry down", func(t *testing.T) {
		m := mocks.NewTokenManager(t)
		r := mocks.NewRevocationStore(t)
		m.On("Decode", "tok").Return(model.SessionClaims{ExpiresAt: exp}, nil)
		r.On("Block", mock.Anything, "tok", exp).Return(model.ErrRegistryUnavailable)

		err := NewTokenService(m, r, testutil.MakeNoopLogger()).Revoke(ctx, "tok")
		assert.ErrorIs(t, err, model.ErrRegistryUnavailable)
	})
}
