package main

import (
	"sort"

	"github.com/ancients-collective/hostfacts/internal/types"
)

// levenshtein computes the edit distance between two strings.
func levenshtein(a, b string) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	if la < lb {
		a, b = b, a
		la, lb = lb, la
	}

	prev := make([]int, lb+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr := make([]int, lb+1)
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev = curr
	}
	return prev[lb]
}

// suggestFacts returns up to 3 fact names or aliases closest to the input.
// An alias is only suggested once per fact, so "memroy" yields "memory" and
// not also "mem".
func suggestFacts(input string) []string {
	return suggestFrom(input, types.FactNames())
}

func suggestFrom(input string, names []string) []string {
	type candidate struct {
		name string
		fact types.Fact
		dist int
	}

	maxDist := len(input) / 2
	if maxDist < 3 {
		maxDist = 3
	}

	var candidates []candidate
	for _, name := range names {
		d := levenshtein(input, name)
		if d <= maxDist && d > 0 {
			f, _ := types.ParseFact(name)
			candidates = append(candidates, candidate{name: name, fact: f, dist: d})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})

	seen := make(map[types.Fact]bool)
	var result []string
	for _, c := range candidates {
		if seen[c.fact] {
			continue
		}
		seen[c.fact] = true
		result = append(result, c.name)
		if len(result) == 3 {
			break
		}
	}
	return result
}
