package security

import "github.com/matthewhartstonge/argon2"

var argon = argon2.DefaultConfig()

// HashPassword hashes a plaintext password using argon2id.
func HashPassword(password string) (string, error) {
	encoded, err := argon.HashEncoded([]byte(password))
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

// VerifyPassword checks a plaintext password against an encoded argon2 hash.
func VerifyPassword(password, passwordHash string) (bool, error) {
	return argon2.VerifyEncoded([]byte(password), []byte(passwordHash))
}
