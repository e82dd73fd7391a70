package usecase

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength and maxPasswordLength bound the plaintext password.
	minPasswordLength = 8
	maxPasswordLength = 20

	// maxPasswordBytes is bcrypt's input limit. Multi-byte characters can hit
	// it before maxPasswordLength does.
	maxPasswordBytes = 72

	// MinCost is the lowest bcrypt cost HashPassword will use.
	MinCost = 10

	// dummyHash はユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュです。
	dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
)

// HashPassword derives a salted bcrypt hash of plain with the given cost.
// Costs below MinCost are raised to MinCost; costs above bcrypt.MaxCost
// fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	switch {
	case cost < MinCost:
		cost = MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// ComparePassword reports whether plain matches the bcrypt hash.
func ComparePassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
