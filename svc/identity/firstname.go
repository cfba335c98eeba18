package identity

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultFirstName is used when nothing better can be derived.
const DefaultFirstName = "there"

// FirstName derives a greeting name. Precedence: display name, metadata
// firstName, metadata full_name, metadata name, email local part, then
// DefaultFirstName.
func FirstName(id Identity) string {
	if name := firstToken(id.DisplayName); name != "" {
		return name
	}

	if v := metaString(id.PrimaryMetadata, "firstName"); v != "" {
		return v
	}
	for _, key := range []string{"full_name", "name"} {
		if name := firstToken(metaString(id.PrimaryMetadata, key)); name != "" {
			return name
		}
	}

	if name := fromEmail(id.Email); name != "" {
		return name
	}
	return DefaultFirstName
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func metaString(meta map[string]any, key string) string {
	if meta == nil {
		return ""
	}
	s, _ := meta[key].(string)
	return strings.TrimSpace(s)
}

// fromEmail upper-cases the first character of the local part and keeps the
// rest up to the first '.', '_' or '-': "john.doe@x" becomes "John".
func fromEmail(addr string) string {
	local, _, found := strings.Cut(addr, "@")
	if !found || local == "" {
		return ""
	}

	first, size := utf8.DecodeRuneInString(local)
	rest := local[size:]
	if i := strings.IndexAny(rest, "._-"); i >= 0 {
		rest = rest[:i]
	}
	return string(unicode.ToUpper(first)) + rest
}
