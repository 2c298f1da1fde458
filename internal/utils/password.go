package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the admin password with bcrypt.  It is called once at
// startup so the plain value from the environment never lives past boot.
// A cost outside bcrypt's valid range (for example a missing or mistyped
// BCRYPT_COST) falls back to the library default instead of failing boot.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares the stored admin hash against a login attempt in
// constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
