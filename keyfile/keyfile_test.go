package keyfile

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youmark/pkcs8"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f"

func writeKeyfile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "gcm-keys")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func testKey() ubiqgcm.Key {
	var key ubiqgcm.Key
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestLoadPlainKey(t *testing.T) {
	path := writeKeyfile(t, `
[default]
KEY = `+testKeyHex+`

[other]
KEY = ffffffffffffffffffffffffffffffff

[empty]
SOMETHING = else
`)

	key, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, testKey(), key)

	key, err = Load(path, "other")
	require.NoError(t, err)
	for _, b := range key {
		assert.Equal(t, byte(0xff), b)
	}

	_, err = Load(path, "missing")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	_, err = Load(path, "empty")
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestLoadBadKey(t *testing.T) {
	path := writeKeyfile(t, `
[short]
KEY = 0001020304

[nothex]
KEY = this is not hex
`)

	_, err := Load(path, "short")
	assert.ErrorIs(t, err, ErrKeyLength)

	_, err = Load(path, "nothex")
	assert.Error(t, err)

	_, err = Load(filepath.Join(t.TempDir(), "missing"), "")
	assert.Error(t, err)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(KeyEnvId, testKeyHex)

	// the file is not consulted
	key, err := Load(filepath.Join(t.TempDir(), "missing"), "nobody")
	require.NoError(t, err)
	assert.Equal(t, testKey(), key)
}

func TestLoadWrappedKey(t *testing.T) {
	const passphrase = "correct horse battery staple"

	pk, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := pkcs8.MarshalPrivateKey(pk, []byte(passphrase), nil)
	require.NoError(t, err)
	epk := pem.EncodeToMemory(&pem.Block{Type: "ENCRYPTED PRIVATE KEY", Bytes: der})

	raw, err := hex.DecodeString(testKeyHex)
	require.NoError(t, err)
	wdk, err := rsa.EncryptOAEP(sha1.New(), rand.Reader, &pk.PublicKey, raw, nil)
	require.NoError(t, err)

	f := `
[wrapped]
WRAPPED_KEY = ` + base64.StdEncoding.EncodeToString(wdk) + `
PASSPHRASE = ` + passphrase + `
ENCRYPTED_PRIVATE_KEY = """` + string(epk) + `"""

[badpass]
WRAPPED_KEY = ` + base64.StdEncoding.EncodeToString(wdk) + `
PASSPHRASE = wrong
ENCRYPTED_PRIVATE_KEY = """` + string(epk) + `"""
`
	path := writeKeyfile(t, f)

	key, err := Load(path, "wrapped")
	require.NoError(t, err)
	assert.Equal(t, testKey(), key)

	_, err = Load(path, "badpass")
	assert.Error(t, err)
}
