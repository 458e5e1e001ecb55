package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_MissingCredentials(t *testing.T) {
	var cfg Config

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_SecretOrPublicKeySatisfiesAuth(t *testing.T) {
	cfg := Config{}
	cfg.DB.Password = "pw"

	cfg.Auth.JWTSecret = "s3cret"
	assert.NoError(t, cfg.Validate())

	cfg.Auth.JWTSecret = ""
	cfg.Auth.JWTPublicKey = "-----BEGIN PUBLIC KEY-----"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_NamesVariablesNotValues(t *testing.T) {
	cfg := Config{}
	cfg.DB.Password = "super-secret-value"

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
	assert.NotContains(t, err.Error(), "super-secret-value")
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host: "db.internal", Port: 5432, User: "kasi",
		Password: "pw", Name: "kasi_lending", SSLMode: "require",
	}
	assert.Equal(t, "postgres://kasi:pw@db.internal:5432/kasi_lending?sslmode=require", db.DSN())
}
