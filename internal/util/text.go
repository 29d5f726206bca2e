package util

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// Preview returns at most n runes of s, followed by "..." when s was cut.
func Preview(s string, n int) string {
	cut := Truncate(s, n)
	if len(cut) == len(s) {
		return s
	}
	return cut + "..."
}
