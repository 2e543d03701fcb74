package logging

import "strings"

// secretKeyPatterns contains substrings that indicate a key likely holds sensitive data.
// Keys are matched case-insensitively.
var secretKeyPatterns = []string{
	"PASSWORD",
	"PASSWD",
	"SECRET",
	"TOKEN",
	"CREDENTIAL",
	"API_KEY",
	"APIKEY",
	"PRIVATE",
	"ENCRYPTIONKEY",
}

// tokenPrefixes contains known credential prefixes that mark a value as
// sensitive regardless of its key.
var tokenPrefixes = []string{
	"ghp_",
	"gho_",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
}

// ShouldMask reports whether values logged under key should be redacted.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix reports whether value starts with a known credential prefix.
func ContainsTokenPrefix(value string) bool {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
