package validators

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed common_passwords.txt
var commonPasswordsFile string

var (
	commonPasswordsOnce sync.Once
	commonPasswords     map[string]struct{}
)

func isCommonPassword(password string) bool {
	commonPasswordsOnce.Do(func() {
		lines := strings.Split(commonPasswordsFile, "\n")
		commonPasswords = make(map[string]struct{}, len(lines))
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				commonPasswords[strings.ToLower(l)] = struct{}{}
			}
		}
	})

	_, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]
	return ok
}
