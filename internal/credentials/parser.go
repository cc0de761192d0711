package credentials

import "strings"

// UserData is the canonical credential subset extracted from a raw request
// body. Empty string means the field was absent (the parser never keeps empty
// values, so absence and emptiness coincide).
type UserData struct {
	Email    string
	Password string
	Name     string
	Phone    string
}

// Accepted aliases per canonical field, in priority order. Clients have sent
// several spellings over time; the first defined, non-empty one wins.
var fieldAliases = map[string][]string{
	"email":    {"email", "emailAddress", "mail"},
	"password": {"password", "pass"},
	"name":     {"name", "fullName", "username"},
	"phone":    {"phone", "phoneNumber", "mobile"},
}

// ParseUserData maps an arbitrary request body onto the canonical credential
// schema. Pure and total: it always returns a UserData, possibly empty.
func ParseUserData(raw map[string]any) UserData {
	return UserData{
		Email:    firstAlias(raw, fieldAliases["email"]),
		Password: firstAlias(raw, fieldAliases["password"]),
		Name:     firstAlias(raw, fieldAliases["name"]),
		Phone:    firstAlias(raw, fieldAliases["phone"]),
	}
}

func firstAlias(raw map[string]any, aliases []string) string {
	for _, key := range aliases {
		v, ok := raw[key]
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok || s == "" {
			continue
		}
		return s
	}
	return ""
}

// Sanitize trims surrounding whitespace from every field.
func Sanitize(d UserData) UserData {
	return UserData{
		Email:    strings.TrimSpace(d.Email),
		Password: strings.TrimSpace(d.Password),
		Name:     strings.TrimSpace(d.Name),
		Phone:    strings.TrimSpace(d.Phone),
	}
}
