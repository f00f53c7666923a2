package sections

import "time"

// RevealDelays returns the staggered reveal offset for each of n cards:
// base × index. A non-positive base yields zero offsets.
func RevealDelays(n int, base time.Duration) []time.Duration {
	if n <= 0 {
		return []time.Duration{}
	}
	out := make([]time.Duration, n)
	if base <= 0 {
		return out
	}
	for idx := range out {
		out[idx] = base * time.Duration(idx)
	}
	return out
}
