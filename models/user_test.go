package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "John Doe", (&User{FirstName: "John", LastName: "Doe"}).FullName())
	assert.Equal(t, "John", (&User{FirstName: "John"}).FullName())
	assert.Equal(t, "Doe", (&User{LastName: "Doe"}).FullName())
}

func TestUser_Truncate(t *testing.T) {
	u := &User{
		Gender:    "non-binary-x",
		FirstName: strings.Repeat("é", 60),
		Email:     strings.Repeat("a", 120),
		City:      "Toronto",
	}
	u.Truncate()

	assert.Equal(t, "non-binary", u.Gender)
	assert.Equal(t, strings.Repeat("é", NameLen), u.FirstName)
	assert.Len(t, u.Email, EmailLen)
	assert.Equal(t, "Toronto", u.City)
}
