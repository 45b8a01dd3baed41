package utils

import (
	"crypto/subtle"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const BcryptCost = bcrypt.DefaultCost

// DefaultSlug is used when a name has no letters or digits left after slugifying.
const DefaultSlug = "sport"

// Slugify lowercases text, turns whitespace runs into hyphens and strips
// everything outside ASCII letters, digits, underscore and hyphen. Repeated
// hyphens are collapsed and leading/trailing hyphens trimmed.
func Slugify(text string) string {
	text = strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	b.Grow(len(text))
	lastHyphen := true // suppresses a leading hyphen
	for _, r := range text {
		switch {
		case r < utf8.RuneSelf && (r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// SportSlug derives the stored slug for a sport name.
func SportSlug(name string) string {
	if slug := Slugify(name); slug != "" {
		return slug
	}
	return DefaultSlug
}

func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = BcryptCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// IsPasswordHash reports whether stored looks like a bcrypt hash. Anything
// else is a legacy plaintext value written before hashing was introduced.
func IsPasswordHash(stored string) bool {
	if len(stored) != 60 || stored[0] != '$' {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

// CheckPassword compares a candidate against a stored admin password, which
// is either a bcrypt hash or a legacy plaintext value.
func CheckPassword(password, stored string) bool {
	if stored == "" || password == "" {
		return false
	}
	if IsPasswordHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(stored)) == 1
}
