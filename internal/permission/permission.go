package permission

// Set is a resolved capability map. A key that is absent resolves to
// false — never to an error.
type Set map[string]bool

// Has reports whether the capability is explicitly granted.
func (s Set) Has(key string) bool {
	return s[key]
}

// HasAny reports whether at least one of the keys is granted.
func (s Set) HasAny(keys ...string) bool {
	for _, key := range keys {
		if s[key] {
			return true
		}
	}
	return false
}

// HasAll reports whether every key is granted.
func (s Set) HasAll(keys ...string) bool {
	for _, key := range keys {
		if !s[key] {
			return false
		}
	}
	return true
}

// Keys returns the granted capability keys.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for key, granted := range s {
		if granted {
			keys = append(keys, key)
		}
	}
	return keys
}
