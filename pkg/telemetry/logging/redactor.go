package logging

import (
	"regexp"
	"strings"
)

// Redactor masks wallet addresses and secrets in log fields.
type Redactor struct {
	patterns []*redactPattern
}

type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Pattern names.
const (
	PatternAddress    = "address"
	PatternPrivateKey = "private_key"
	PatternBearer     = "bearer_token"
)

// NewRedactor creates a Redactor with the built-in patterns.
func NewRedactor() *Redactor {
	// Order matters: 64-hex private keys are matched before 40-hex addresses.
	defs := []struct {
		name        string
		regex       string
		replacement string
	}{
		{PatternPrivateKey, `\b0x[0-9a-fA-F]{64}\b`, "0x***"},
		{PatternAddress, `\b(0x[0-9a-fA-F]{4})[0-9a-fA-F]{32}([0-9a-fA-F]{4})\b`, "$1...$2"},
		{PatternBearer, `Bearer\s+[a-zA-Z0-9\-._~+/]+=*`, "Bearer ***"},
	}

	r := &Redactor{}
	for _, d := range defs {
		r.patterns = append(r.patterns, &redactPattern{
			name:        d.name,
			regex:       regexp.MustCompile(d.regex),
			replacement: d.replacement,
		})
	}
	return r
}

// RedactString redacts addresses and secrets in a string value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// RedactArgs redacts variadic log arguments in the form key1, value1, ...
// Values under sensitive keys are masked entirely; other string values and
// string slices are pattern-redacted.
func (r *Redactor) RedactArgs(args ...any) []any {
	if len(args) == 0 {
		return args
	}

	redacted := make([]any, len(args))
	copy(redacted, args)

	for i := 1; i < len(redacted); i += 2 {
		if key, ok := redacted[i-1].(string); ok && isSensitiveKey(key) {
			redacted[i] = "***"
			continue
		}

		switch v := redacted[i].(type) {
		case string:
			redacted[i] = r.RedactString(v)
		case []string:
			out := make([]string, len(v))
			for j, s := range v {
				out[j] = r.RedactString(s)
			}
			redacted[i] = out
		case error:
			redacted[i] = r.RedactString(v.Error())
		}
	}

	return redacted
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, sensitive := range []string{"private_key", "privatekey", "secret", "token", "password", "mnemonic"} {
		if strings.Contains(lowerKey, sensitive) {
			return true
		}
	}
	return false
}

// RedactAddress shortens a 0x address to its first and last four hex digits.
func RedactAddress(addr string) string {
	if len(addr) != 42 || !strings.HasPrefix(addr, "0x") {
		return addr
	}
	return addr[:6] + "..." + addr[38:]
}
