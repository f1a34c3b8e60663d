package compare

import "math"

// Accuracy is the percentage of parts classified as match, rounded half up.
// An empty comparison scores 100: nothing asked, nothing wrong.
func Accuracy(parts []Part) int {
	if len(parts) == 0 {
		return 100
	}
	matches := 0
	for _, p := range parts {
		if p.Kind == Match {
			matches++
		}
	}
	return int(math.Round(100 * float64(matches) / float64(len(parts))))
}
