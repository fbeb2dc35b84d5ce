// Package match resolves technician accounts to responsible labels found in
// uploaded datasets.
package match

import "sort"

// sequenceMatcher computes similarity between two rune sequences using the
// Ratcliff-Obershelp longest-matching-block recursion. Popular elements of b
// are treated as noise for long sequences, matching the behavior evaluation
// thresholds were tuned against.
type sequenceMatcher struct {
	a, b    []rune
	b2j     map[rune][]int
	popular map[rune]bool
}

func newSequenceMatcher(a, b string) *sequenceMatcher {
	m := &sequenceMatcher{a: []rune(a), b: []rune(b)}
	m.b2j = make(map[rune][]int)
	for j, r := range m.b {
		m.b2j[r] = append(m.b2j[r], j)
	}

	m.popular = make(map[rune]bool)
	if n := len(m.b); n >= 200 {
		threshold := n/100 + 1
		for r, idxs := range m.b2j {
			if len(idxs) > threshold {
				m.popular[r] = true
			}
		}
		for r := range m.popular {
			delete(m.b2j, r)
		}
	}
	return m
}

func (m *sequenceMatcher) findLongestMatch(alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		newj2len := make(map[int]int)
		for _, j := range m.b2j[m.a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			newj2len[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = newj2len
	}
	return besti, bestj, bestsize
}

func (m *sequenceMatcher) totalMatched() int {
	type span struct{ alo, ahi, blo, bhi int }
	stack := []span{{0, len(m.a), 0, len(m.b)}}
	total := 0
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		i, j, k := m.findLongestMatch(s.alo, s.ahi, s.blo, s.bhi)
		if k == 0 {
			continue
		}
		total += k
		stack = append(stack,
			span{s.alo, i, s.blo, j},
			span{i + k, s.ahi, j + k, s.bhi})
	}
	return total
}

// Ratio returns the similarity of two strings in [0, 1]: twice the number of
// matched characters over the combined length. Two empty strings are fully
// similar.
func Ratio(a, b string) float64 {
	m := newSequenceMatcher(a, b)
	length := len(m.a) + len(m.b)
	if length == 0 {
		return 1.0
	}
	return 2.0 * float64(m.totalMatched()) / float64(length)
}

// Candidate is one fuzzy suggestion with its similarity score.
type Candidate struct {
	Key        string  `json:"key"`
	Similarity float64 `json:"similarity"`
}

// ClosestMatches returns up to n candidates scoring at least cutoff against
// the query, best first. Equal scores keep the candidates' original order.
func ClosestMatches(query string, candidates []string, n int, cutoff float64) []Candidate {
	var scored []Candidate
	for _, cand := range candidates {
		if r := Ratio(query, cand); r >= cutoff {
			scored = append(scored, Candidate{Key: cand, Similarity: r})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})
	if n > 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}
