package auth

import "golang.org/x/crypto/bcrypt"

// Hasher provides one-way password hashing backed by bcrypt. Each Hash
// call salts freshly, so hashing the same plaintext twice yields
// different outputs that both verify.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the default bcrypt cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost creates a Hasher with a custom cost. Tests use a low
// cost to keep hashing fast.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash generates a salted hash from a plaintext password.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(bytes), err
}

// Verify compares a plaintext password with a stored hash. It goes
// through bcrypt's own comparison, so timing does not correlate with
// how much of the password matches. A mismatch is false, not an error.
func (h *Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
