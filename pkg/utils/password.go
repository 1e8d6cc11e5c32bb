package utils

import "golang.org/x/crypto/bcrypt"

// PasswordHashCost balances brute-force resistance against login latency.
// bcrypt digests encode their own cost, so retuning this never invalidates
// previously stored hashes.
const PasswordHashCost = 12

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
