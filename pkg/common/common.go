package common

import (
	"os"
	"strings"
)

// FileExists reports whether file names an existing path.
func FileExists(file string) bool {
	_, err := os.Stat(file)
	return err == nil || !os.IsNotExist(err)
}

// IsEmptyOrNA reports whether val is blank or one of the placeholder values
// users type for "nothing".
func IsEmptyOrNA(val string) bool {
	switch strings.ToUpper(strings.TrimSpace(val)) {
	case "", "N/A", "NA", "NULL":
		return true
	}
	return false
}

// NormalizeUsername trims and lower-cases a login name.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
