package domain

import (
	"strings"
	"time"
)

// UserProfile is created once on first interaction.
type UserProfile struct {
	Name      string
	CreatedAt *time.Time
}

// IsSetUp reports whether the profile has been created.
func (p UserProfile) IsSetUp() bool {
	return p.Name != ""
}

// NewUserProfile validates the name and stamps the creation time.
func NewUserProfile(name string, now time.Time) (UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return UserProfile{}, invalidf("name must not be empty")
	}
	created := now
	return UserProfile{Name: name, CreatedAt: &created}, nil
}
