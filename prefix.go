package art

// prefixOutcome classifies how a node's compressed prefix relates to
// the unconsumed remainder of a probe key.
type prefixOutcome uint8

const (
	// matchFull: the entire prefix matched, descent can continue.
	matchFull prefixOutcome = iota
	// matchPartial: the key diverges from the prefix before its end.
	matchPartial
	// matchKeyExhausted: the key ran out strictly inside the prefix.
	matchKeyExhausted
)

// matchPrefix compares prefix against the unconsumed key remainder and
// returns the number of leading bytes that matched plus the outcome.
// Prefixes are stored exactly (never truncated), so a full match here
// is authoritative and lookups need no leaf-level re-validation.
func matchPrefix(prefix, key []byte) (int, prefixOutcome) {
	limit := len(prefix)
	if len(key) < limit {
		limit = len(key)
	}
	for i := 0; i < limit; i++ {
		if prefix[i] != key[i] {
			return i, matchPartial
		}
	}
	if limit < len(prefix) {
		return limit, matchKeyExhausted
	}
	return limit, matchFull
}

// longestCommonPrefix returns the length of the longest common prefix
// of a and b.
func longestCommonPrefix(a, b []byte) int {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}
	for i := 0; i < limit; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return limit
}
