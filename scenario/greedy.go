// Package scenario - greedy baseline.
package scenario

import "sort"

// Greedy returns the cost of the greedy packing of s: objects are taken in
// descending order of cost/(weight+size) until the next one would exceed
// either budget. Ties keep catalogue order.
//
// Ratios are compared by cross-multiplication in int64, so an object with
// weight+size == 0 and a positive cost ranks first.
//
// Complexity: O(N log N).
func Greedy(s Scenario) int64 {
	order := make([]int, s.NumberOfObjects)
	for i := range order {
		order[i] = i
	}
	den := func(i int) int64 { return int64(s.Weights[i]) + int64(s.Sizes[i]) }
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		return int64(s.Costs[i])*den(j) > int64(s.Costs[j])*den(i)
	})

	var weight, size, cost int64
	for _, i := range order {
		weight += int64(s.Weights[i])
		size += int64(s.Sizes[i])
		if weight > int64(s.MaxWeight) || size > int64(s.MaxSize) {
			break
		}
		cost += int64(s.Costs[i])
	}

	return cost
}
