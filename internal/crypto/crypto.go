package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
)

const (
	KeyLength   = 32
	SaltLength  = 16
	Memory      = 64 * 1024
	Iterations  = 1
	Parallelism = 4
)

func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	_, err := rand.Read(salt)

	return salt, err
}

// HashPassword возвращает base64(salt || argon2id(password, salt))
func HashPassword(password string) (string, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, Parallelism, KeyLength)

	saltAndHash := make([]byte, 0, len(salt)+len(hash))
	saltAndHash = append(saltAndHash, salt...)
	saltAndHash = append(saltAndHash, hash...)

	return base64.StdEncoding.EncodeToString(saltAndHash), nil
}

func VerifyPassword(password, encodedHash string) bool {
	saltAndHash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}

	if len(saltAndHash) != SaltLength+KeyLength {
		return false
	}

	salt := saltAndHash[:SaltLength]
	storedHash := saltAndHash[SaltLength:]

	hash := argon2.IDKey([]byte(password), salt, Iterations, Memory, Parallelism, KeyLength)

	return subtle.ConstantTimeCompare(hash, storedHash) == 1
}
