package spatial

// Rollup adds key and every strict ancestor prefix of it, down to length 1,
// into set. Keys longer than limit are truncated first. The walk stops early
// when a prefix is already present: its own ancestors were added when it was.
// Idempotent.
func Rollup(key string, limit int, set map[string]bool) {
	if limit > 0 && len(key) > limit {
		key = key[:limit]
	}
	for k := key; len(k) >= 1; k = k[:len(k)-1] {
		if set[k] {
			return
		}
		set[k] = true
	}
}
