package models

import "unicode/utf8"

// Column widths of the users table. Values longer than these are cut on write.
const (
	GenderLen     = 10
	NameLen       = 50
	PhoneLen      = 20
	EmailLen      = 100
	PlaceLen      = 50
	PictureURLLen = 200
)

// User is the flat local copy of one generated profile.
// It maps to the `users` table in SQLite.
type User struct {
	ID           int64  `db:"id" json:"id"`
	Gender       string `db:"gender" json:"gender"`
	FirstName    string `db:"first_name" json:"first_name"`
	LastName     string `db:"last_name" json:"last_name"`
	Phone        string `db:"phone" json:"phone"`
	Email        string `db:"email" json:"email"`
	Country      string `db:"country" json:"country"`
	City         string `db:"city" json:"city"`
	Thumbnail    string `db:"thumbnail" json:"thumbnail"`
	LargePicture string `db:"large_picture" json:"large_picture"`
}

// FullName returns "First Last".
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Truncate cuts every text field to its column width.
func (u *User) Truncate() {
	u.Gender = truncate(u.Gender, GenderLen)
	u.FirstName = truncate(u.FirstName, NameLen)
	u.LastName = truncate(u.LastName, NameLen)
	u.Phone = truncate(u.Phone, PhoneLen)
	u.Email = truncate(u.Email, EmailLen)
	u.Country = truncate(u.Country, PlaceLen)
	u.City = truncate(u.City, PlaceLen)
	u.Thumbnail = truncate(u.Thumbnail, PictureURLLen)
	u.LargePicture = truncate(u.LargePicture, PictureURLLen)
}

// truncate counts runes, not bytes, so multi-byte names are never split.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
