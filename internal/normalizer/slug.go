package normalizer

import "strings"

// Kebab lowercases s and joins its whitespace-separated words with "-".
func Kebab(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}

func slugOrDefault(slug, name string) string {
	if s := strings.TrimSpace(slug); s != "" {
		return s
	}
	return Kebab(name)
}

func orDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	if s := strings.TrimSpace(*v); s != "" {
		return s
	}
	return def
}

func optional(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	s := strings.TrimSpace(*v)
	return &s
}
