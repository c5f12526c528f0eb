package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/linesmerrill/avenue-police-api/config"
)

func TestSubcommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "import", "export", "seed-statutes", "bootstrap", "reset-password"})
}

func TestImportRequiresFile(t *testing.T) {
	assert.Error(t, importCmd.Args(importCmd, nil))
	assert.NoError(t, importCmd.Args(importCmd, []string{"backup.json"}))
}

func TestConnectRequiresURI(t *testing.T) {
	_, _, err := connect(context.Background(), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_URI")
}

func TestStoresFor(t *testing.T) {
	s := storesFor(nil)
	assert.NotNil(t, s.Officers)
	assert.NotNil(t, s.Statutes)
	assert.NotNil(t, s.Reports)
	assert.NotNil(t, s.Counters)
}

func TestHashPassword(t *testing.T) {
	_, err := hashPassword("abc")
	assert.Error(t, err)

	hash, err := hashPassword("newsecret")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("newsecret")))
}
