//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"tourbook/internal/handler/middleware"
	"tourbook/internal/pkg/config"
	"tourbook/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

// GenerateToken signs a token for a fresh user of orgID.
func (h *JWTHelper) GenerateToken(t *testing.T, orgID uuid.UUID, role middleware.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.TokenDuration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(uuid.New(), orgID, string(role))
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, orgID uuid.UUID, role middleware.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(uuid.New(), orgID, string(role))
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
