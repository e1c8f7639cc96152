package valutatrade

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 4

// User is a registered account. The ID is assigned at registration and
// never changes; the name is unique across all users.
type User struct {
	ID           int
	Name         string
	PasswordHash []byte
	RegisteredAt time.Time
}

// NewUser creates a user with a freshly hashed password.
func NewUser(id int, name, password string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Validationf("username cannot be empty")
	}
	u := &User{ID: id, Name: name, RegisteredAt: time.Now()}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword replaces the stored password hash. bcrypt embeds its own salt
// in the hash.
func (u *User) SetPassword(password string) error {
	if len(password) < minPasswordLen {
		return Validationf("password must be at least %d characters", minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("cannot hash password: %w", err)
	}
	u.PasswordHash = hash
	return nil
}

// VerifyPassword reports whether password matches the stored hash.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}
