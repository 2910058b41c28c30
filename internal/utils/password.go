package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidUID is returned by [DecodeUID] for malformed identifiers.
var ErrInvalidUID = errors.New("invalid uid")

// HashPassword returns the bcrypt digest of password at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the bcrypt hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// EncodeUID renders a user id in base 36, the form used in reset links.
func EncodeUID(id int64) string {
	return strconv.FormatInt(id, 36)
}

// DecodeUID parses a base 36 user id.
func DecodeUID(uid string) (int64, error) {
	id, err := strconv.ParseInt(strings.ToLower(uid), 36, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidUID
	}
	return id, nil
}
