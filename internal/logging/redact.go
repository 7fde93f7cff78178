package logging

import "strings"

// secretKeyPatterns mark attribute keys whose values are never written in
// clear text. Matching is case-insensitive.
var secretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
}

// tokenPrefixes mark values that look like credentials regardless of key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghs_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// shouldMask reports whether the attribute key names a secret.
func shouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

func hasTokenPrefix(value string) bool {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// maskValue keeps at most the last four characters of value.
func maskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
