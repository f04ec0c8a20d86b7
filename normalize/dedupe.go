package normalize

import (
	"hash/fnv"
	"math/bits"
	"strings"
)

// nearDuplicateDistance is the largest Hamming distance between two
// fingerprints still treated as the same text.
const nearDuplicateDistance = 3

// fingerprint computes a 64-bit SimHash of text over lower-cased words.
// Uses FNV-64a hash on word-level tokens with bit vector accumulation.
func fingerprint(text string) uint64 {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return 0
	}

	var vector [64]int
	for _, word := range words {
		h := fnv.New64a()
		h.Write([]byte(word))
		hash := h.Sum64()

		for i := 0; i < 64; i++ {
			if hash&(1<<uint(i)) != 0 {
				vector[i]++
			} else {
				vector[i]--
			}
		}
	}

	var fp uint64
	for i := 0; i < 64; i++ {
		if vector[i] > 0 {
			fp |= 1 << uint(i)
		}
	}
	return fp
}

// distance returns the Hamming distance between two fingerprints.
func distance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

// dedupe keeps the first of every group of near-identical items, in order.
// key returns the text compared for each item.
func dedupe[T any](items []T, key func(T) string) []T {
	out := make([]T, 0, len(items))
	seen := make([]uint64, 0, len(items))
next:
	for _, it := range items {
		fp := fingerprint(key(it))
		for _, s := range seen {
			if distance(fp, s) <= nearDuplicateDistance {
				continue next
			}
		}
		seen = append(seen, fp)
		out = append(out, it)
	}
	return out
}

// unique keeps the first item of every group sharing exactly the same key,
// in order.
func unique[T any](items []T, key func(T) string) []T {
	out := make([]T, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
