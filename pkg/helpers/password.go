package helpers

import (
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyMu     sync.Mutex
	dummyHashes = map[int][]byte{}
)

func normalizeCost(cost int) int {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return cost
}

// dummyHash returns a hash at the given cost, generated once per cost, so
// unknown accounts cost about as much as a wrong password.
func dummyHash(cost int) []byte {
	cost = normalizeCost(cost)
	dummyMu.Lock()
	defer dummyMu.Unlock()
	if h, ok := dummyHashes[cost]; ok {
		return h
	}
	h, err := bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), cost)
	if err != nil {
		return nil
	}
	dummyHashes[cost] = h
	return h
}

// HashPassword hashes the plain text password using bcrypt with the given cost.
// Costs outside bcrypt's accepted range fall back to bcrypt.DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), normalizeCost(cost))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// CompareDummy burns one bcrypt comparison at cost and always reports a mismatch.
func CompareDummy(plain string, cost int) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash(cost), []byte(plain))
	return false
}
