package validators

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

const (
	minPasswordLength = 8
	maxSimilarity     = 0.7
)

// Password rule messages.
const (
	MsgPasswordTooShort = "This password is too short. It must contain at least %d characters."
	MsgPasswordCommon   = "This password is too common."
	MsgPasswordNumeric  = "This password is entirely numeric."
	MsgPasswordSimilar  = "The password is too similar to the %s."
)

// Attribute is a user attribute a password must not resemble.
type Attribute struct {
	// Name is the human-readable attribute name used in the message.
	Name  string
	Value string
}

var nonWord = regexp.MustCompile(`\W+`)

// PasswordProblems runs every password rule and returns all messages, in
// rule order. An empty result means the password is acceptable.
func PasswordProblems(password string, attrs ...Attribute) []string {
	var problems []string

	if msg := similarityProblem(password, attrs); msg != "" {
		problems = append(problems, msg)
	}
	if len([]rune(password)) < minPasswordLength {
		problems = append(problems, fmt.Sprintf(MsgPasswordTooShort, minPasswordLength))
	}
	if isCommonPassword(password) {
		problems = append(problems, MsgPasswordCommon)
	}
	if isNumeric(password) {
		problems = append(problems, MsgPasswordNumeric)
	}

	return problems
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func similarityProblem(password string, attrs []Attribute) string {
	pw := strings.ToLower(password)
	if pw == "" {
		return ""
	}

	for _, attr := range attrs {
		value := strings.ToLower(attr.Value)
		if value == "" {
			continue
		}

		parts := append(nonWord.Split(value, -1), value)
		for _, part := range parts {
			if part == "" {
				continue
			}
			if quickRatio(pw, part) >= maxSimilarity {
				return fmt.Sprintf(MsgPasswordSimilar, attr.Name)
			}
		}
	}

	return ""
}

// quickRatio is an upper bound on the similarity of a and b: twice the
// number of shared characters, counted as a multiset, over the total length.
func quickRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}

	avail := make(map[rune]int, len(rb))
	for _, r := range rb {
		avail[r]++
	}

	matches := 0
	for _, r := range ra {
		if avail[r] > 0 {
			avail[r]--
			matches++
		}
	}

	return 2 * float64(matches) / float64(total)
}
