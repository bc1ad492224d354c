package similarity

import "math"

// Cosine returns the cosine similarity of a and b in [-1, 1]. Mismatched
// lengths compare over the shorter vector. Returns 0 when either vector has
// zero norm, guarding divide-by-zero without raising.
func Cosine(a, b []float64) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range n {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
