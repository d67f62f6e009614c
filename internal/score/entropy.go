package score

import "math"

// Entropy returns the Shannon entropy (in bits) of the character
// distribution of text. Repetitive strings score near zero; natural
// language prose typically lands above 3.5 bits.
func Entropy(text string) float64 {
	if text == "" {
		return 0
	}

	counts := make(map[rune]int)
	total := 0
	for _, r := range text {
		counts[r]++
		total++
	}

	entropy := 0.0
	for _, count := range counts {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}

	return entropy
}
