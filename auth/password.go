package auth

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

var ErrUnknownHashFormat = errors.New("unknown password hash format")

// HashPassword hashes a plaintext password with bcrypt. Every call uses a
// fresh salt, so equal passwords never share a stored value.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash. Besides bcrypt
// it accepts werkzeug's "pbkdf2:<alg>:<iterations>$<salt>$<hex>" format so
// accounts imported from the previous deployment can still log in.
func CheckPassword(stored, plain string) (bool, error) {
	if strings.HasPrefix(stored, "pbkdf2:") {
		return checkPBKDF2(stored, plain)
	}

	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

func checkPBKDF2(stored, plain string) (bool, error) {
	method, rest, ok := strings.Cut(stored, "$")
	if !ok {
		return false, ErrUnknownHashFormat
	}
	salt, want, ok := strings.Cut(rest, "$")
	if !ok {
		return false, ErrUnknownHashFormat
	}

	parts := strings.Split(method, ":")
	if len(parts) != 3 {
		return false, ErrUnknownHashFormat
	}
	iterations, err := strconv.Atoi(parts[2])
	if err != nil || iterations <= 0 {
		return false, ErrUnknownHashFormat
	}

	var h func() hash.Hash
	var size int
	switch parts[1] {
	case "sha256":
		h, size = sha256.New, sha256.Size
	case "sha512":
		h, size = sha512.New, sha512.Size
	default:
		return false, ErrUnknownHashFormat
	}

	wantBytes, err := hex.DecodeString(want)
	if err != nil {
		return false, ErrUnknownHashFormat
	}

	got := pbkdf2.Key([]byte(plain), []byte(salt), iterations, size, h)
	return subtle.ConstantTimeCompare(got, wantBytes) == 1, nil
}
