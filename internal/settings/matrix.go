package settings

import "sort"

// Matrix maps axes to the values a build grid spans. Combinations are built
// layer by layer with keys sorted alphabetically, values joined with "-".
type Matrix map[string][]string

// MatrixFor returns the full value grid for the given axes.
func MatrixFor(axes []string) Matrix {
	m := make(Matrix, len(axes))
	for _, axis := range axes {
		if values, ok := Values[axis]; ok {
			m[axis] = append([]string(nil), values...)
		}
	}
	return m
}

// Combinations returns all cartesian product combinations of the matrix.
func (m Matrix) Combinations() []string {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := append([]string(nil), m[keys[0]]...)
	for _, key := range keys[1:] {
		values := m[key]
		next := make([]string, 0, len(result)*len(values))
		for _, prev := range result {
			for _, v := range values {
				next = append(next, prev+"-"+v)
			}
		}
		result = next
	}
	return result
}

// CombinationCount returns the total number of combinations.
func (m Matrix) CombinationCount() int {
	if len(m) == 0 {
		return 0
	}
	count := 1
	for _, values := range m {
		count *= len(values)
	}
	return count
}

// SortedAxes returns the matrix keys in combination order.
func (m Matrix) SortedAxes() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return sorted(keys)
}
