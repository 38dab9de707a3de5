package boggle

import "sort"

// Dictionary is the membership + prefix oracle the solver and the word
// submission pipeline both depend on.
type Dictionary interface {
	Contains(word string) bool
	HasPrefix(prefix string) bool
}

// FindAllWords enumerates every dictionary word reachable by a legal path
// on b, each letter used at most once per path, DFS-pruned by prefix
// membership so dead branches are abandoned immediately.
func FindAllWords(b *Board, dict Dictionary) []string {
	found := map[string]bool{}
	visited := make([][]bool, b.Size)
	for r := range visited {
		visited[r] = make([]bool, b.Size)
	}

	var walk func(r, c int, prefix string, depth int)
	walk = func(r, c int, prefix string, depth int) {
		if depth > solverMaxDepth {
			return
		}
		word := prefix + b.Cells[r][c]
		if !dict.HasPrefix(word) {
			return
		}
		visited[r][c] = true
		if len(word) >= MinWordLength && dict.Contains(word) {
			found[word] = true
		}
		for _, n := range b.neighbors(r, c) {
			if visited[n[0]][n[1]] {
				continue
			}
			walk(n[0], n[1], word, depth+1)
		}
		visited[r][c] = false
	}

	for r := 0; r < b.Size; r++ {
		for c := 0; c < b.Size; c++ {
			walk(r, c, "", 1)
		}
	}

	words := make([]string, 0, len(found))
	for w := range found {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

// LongestWord returns the longest word in all, tie-breaking
// alphabetically, matching the sort key (-len(w), w) used by the board
// this spec was distilled from. Returns "" if nothing is findable.
func LongestWord(all []string) string {
	if len(all) == 0 {
		return ""
	}
	sorted := append([]string(nil), all...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return sorted[0]
}
