// Package keyfile loads AES-128 keys for use with ubiqgcm from an INI
// style key file or the environment.
package keyfile

import (
	"crypto/rsa"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/go-ini/ini"
	"github.com/youmark/pkcs8"

	ubiqgcm "gitlab.com/ubiqsecurity/ubiq-gcm-go"
)

const (
	keyfileKeyId        = "KEY"
	keyfileWrappedKeyId = "WRAPPED_KEY"
	keyfileEpkId        = "ENCRYPTED_PRIVATE_KEY"
	keyfilePassphraseId = "PASSPHRASE"

	// KeyEnvId names the environment variable which, when set, supplies
	// the key in hex and takes precedence over any file.
	KeyEnvId = "UBIQ_GCM_" + keyfileKeyId

	// DefaultProfile is the section used when no profile is named.
	DefaultProfile = "default"
)

var (
	ErrProfileNotFound = errors.New("keyfile: profile not found")
	ErrNoKey           = errors.New("keyfile: profile contains no key")
	ErrKeyLength       = errors.New("keyfile: key is not 16 bytes")
)

// DefaultPath returns ~/.ubiq/gcm-keys for the current user.
func DefaultPath() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(u.HomeDir, ".ubiq", "gcm-keys"), nil
}

// Load returns the key for the named profile.
//
// If UBIQ_GCM_KEY is set, it is decoded and returned and the file is
// not read. Otherwise the section of the file named by profile (or
// "default" if profile is empty) is consulted. An empty path reads the
// default file.
//
// A section either holds the key directly:
//
//	[default]
//	KEY = 000102030405060708090a0b0c0d0e0f
//
// or wrapped under an RSA key, in which case WRAPPED_KEY is the base64
// encoded RSA-OAEP(SHA-1) ciphertext, ENCRYPTED_PRIVATE_KEY is a PEM
// encoded, encrypted PKCS#8 private key, and PASSPHRASE decrypts it.
func Load(path, profile string) (ubiqgcm.Key, error) {
	if val, ok := os.LookupEnv(KeyEnvId); ok {
		return decodeKey(val)
	}

	if len(path) == 0 {
		var err error
		if path, err = DefaultPath(); err != nil {
			return ubiqgcm.Key{}, err
		}
	}
	if len(profile) == 0 {
		profile = DefaultProfile
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return ubiqgcm.Key{}, err
	}

	s, err := cfg.GetSection(profile)
	if err != nil {
		return ubiqgcm.Key{}, fmt.Errorf("%w: %s", ErrProfileNotFound, profile)
	}

	switch {
	case s.HasKey(keyfileKeyId):
		return decodeKey(s.Key(keyfileKeyId).String())
	case s.HasKey(keyfileWrappedKeyId):
		return unwrapKey(
			s.Key(keyfileWrappedKeyId).String(),
			s.Key(keyfileEpkId).String(),
			s.Key(keyfilePassphraseId).String())
	}

	return ubiqgcm.Key{}, ErrNoKey
}

func decodeKey(s string) (ubiqgcm.Key, error) {
	var key ubiqgcm.Key

	raw, err := hex.DecodeString(s)
	if err == nil {
		err = toKey(&key, raw)
	}

	return key, err
}

// toKey copies raw into key and clears raw.
func toKey(key *ubiqgcm.Key, raw []byte) error {
	defer clear(raw)

	if len(raw) != ubiqgcm.KeySize {
		return ErrKeyLength
	}
	copy(key[:], raw)
	return nil
}

// unwrapKey decrypts the wrapped data key using the private key
// contained in epk, which is itself encrypted with the passphrase.
func unwrapKey(wdk, epk, passphrase string) (ubiqgcm.Key, error) {
	var err error
	var pk *rsa.PrivateKey
	var key ubiqgcm.Key

	block, rem := pem.Decode([]byte(epk))
	if block != nil && len(rem) == 0 {
		pk, err = pkcs8.ParsePKCS8PrivateKeyRSA(
			block.Bytes, []byte(passphrase))
	} else {
		err = errors.New("keyfile: unrecognized private key format")
	}

	if err == nil {
		var wdkbytes, dk []byte

		wdkbytes, err = base64.StdEncoding.DecodeString(wdk)
		if err == nil {
			dk, err = rsa.DecryptOAEP(
				sha1.New(), nil, pk, wdkbytes, nil)
		}
		if err == nil {
			err = toKey(&key, dk)
		}
	}

	return key, err
}
