package awards

// KeySet is a set of normalized title keys.
type KeySet map[string]struct{}

// Add inserts key. Duplicates are absorbed.
func (s KeySet) Add(key string) {
	s[key] = struct{}{}
}

// Has reports membership. The empty key is never a member.
func (s KeySet) Has(key string) bool {
	if key == "" {
		return false
	}
	_, ok := s[key]
	return ok
}

// Len returns the number of keys.
func (s KeySet) Len() int {
	return len(s)
}
