package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"hr-pipeline-backend/config"
)

func TestTokenCommand(t *testing.T) {
	config.Conf = &config.Configuration{}
	config.Conf.Auth.JWTSecret = "test-secret"

	t.Run(`token with claims`, func(t *testing.T) {
		out := new(bytes.Buffer)
		tokenCmd.SetOut(out)
		tokenUserID = "user-1"
		tokenName = "Смирнова Анна"
		tokenRole = "hr_admin"
		require.NoError(t, runToken(tokenCmd, nil))

		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(strings.TrimSpace(out.String()), claims, func(token *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		require.Equal(t, "user-1", claims["sub"])
		require.Equal(t, "hr_admin", claims["role"])
	})

	t.Run(`unknown role`, func(t *testing.T) {
		tokenRole = "root"
		require.Error(t, runToken(tokenCmd, nil))
	})
}
