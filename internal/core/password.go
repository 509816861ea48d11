// AngelaMos | 2026
// password.go

package core

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/argon2"
)

const MinPasswordLength = 8

// Argon2Params are the argon2id cost settings encoded into every stored
// password hash.
type Argon2Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

var DefaultArgon2 = Argon2Params{
	Memory:  64 * 1024,
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

// HashPassword hashes with DefaultArgon2.
func HashPassword(password string) (string, error) {
	return DefaultArgon2.Hash(password)
}

func (p Argon2Params) Hash(password string) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return p.encode(salt, key), nil
}

func (p Argon2Params) encode(salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// VerifyPassword checks password against a stored hash. When the hash was
// produced with parameters other than DefaultArgon2, upgraded holds a fresh
// hash the caller should store; otherwise it is empty.
func VerifyPassword(password, encoded string) (ok bool, upgraded string, err error) {
	params, salt, key, err := parseArgon2(encoded)
	if err != nil {
		return false, "", err
	}

	candidate := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Threads, params.KeyLen)
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return false, "", nil
	}

	if params == DefaultArgon2 {
		return true, "", nil
	}

	upgraded, err = HashPassword(password)
	if err != nil {
		//nolint:nilerr // verified; the upgrade is optional
		return true, "", nil
	}
	return true, upgraded, nil
}

var dummyHash = sync.OnceValue(func() string {
	h, err := HashPassword("no-such-account")
	if err != nil {
		panic(fmt.Sprintf("password: dummy hash: %v", err))
	}
	return h
})

// VerifyPasswordTimingSafe spends the same argon2 work whether or not the
// account exists. A nil or empty stored hash never verifies.
func VerifyPasswordTimingSafe(password string, encoded *string) (bool, string, error) {
	if encoded == nil || *encoded == "" {
		//nolint:errcheck // result discarded, only the cost matters
		_, _, _ = VerifyPassword(password, dummyHash())
		return false, "", nil
	}
	return VerifyPassword(password, *encoded)
}

func parseArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return p, nil, nil, fmt.Errorf("unsupported password hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, fmt.Errorf("unsupported argon2 version %q", parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("invalid argon2 params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode salt: %w", err)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("decode hash: %w", err)
	}

	//nolint:gosec // G115: lengths are tens of bytes
	p.SaltLen, p.KeyLen = uint32(len(salt)), uint32(len(key))

	return p, salt, key, nil
}
