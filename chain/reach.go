// SPDX-License-Identifier: MIT
// Package chain - structural analysis over positive-probability edges.
//
// The transition graph has an edge i→j iff M[i][j] > 0. Everything here is a
// breadth-first walk over that graph, so results depend only on which
// entries are positive, never on their magnitudes or on randomness.
//
// Complexity quicksheet (N states, E positive entries):
//   - Reachable: O(N + E); CommunicatingClasses / ClosedClasses: O(N·(N + E)).

package chain

import "fmt"

// Reachable returns seen[j] == true iff j can be reached from `from` in zero or
// more steps. Errors: ErrStateOutOfRange.
func (m *TransitionMatrix) Reachable(from int) ([]bool, error) {
	if err := m.checkState(from); err != nil {
		return nil, fmt.Errorf("chain.Reachable: %w", err)
	}

	return m.bfs(from), nil
}

// bfs marks every state reachable from start (inclusive). start must be valid.
func (m *TransitionMatrix) bfs(start int) []bool {
	seen := make([]bool, m.n)
	queue := make([]int, 0, m.n)
	seen[start] = true
	queue = append(queue, start)

	var cur int
	for len(queue) > 0 {
		cur, queue = queue[0], queue[1:]
		for _, nbr := range m.succ[cur] {
			if !seen[nbr] {
				seen[nbr] = true
				queue = append(queue, nbr)
			}
		}
	}

	return seen
}

// CanReachAny reports whether any of targets is reachable from `from`.
// Errors: ErrStateOutOfRange for `from` or any target.
func (m *TransitionMatrix) CanReachAny(from int, targets []int) (bool, error) {
	seen, err := m.Reachable(from)
	if err != nil {
		return false, err
	}
	ok := false
	for _, t := range targets {
		if err = m.checkState(t); err != nil {
			return false, fmt.Errorf("chain.CanReachAny: %w", err)
		}
		ok = ok || seen[t]
	}

	return ok, nil
}

// CommunicatingClasses partitions the states into classes of mutually
// reachable states. Classes are ordered by their smallest member and each
// class is sorted ascending.
func (m *TransitionMatrix) CommunicatingClasses() [][]int {
	reach := make([][]bool, m.n)
	for i := 0; i < m.n; i++ {
		reach[i] = m.bfs(i)
	}

	assigned := make([]bool, m.n)
	var classes [][]int
	for i := 0; i < m.n; i++ {
		if assigned[i] {
			continue
		}
		class := []int{i}
		assigned[i] = true
		for j := i + 1; j < m.n; j++ {
			if !assigned[j] && reach[i][j] && reach[j][i] {
				class = append(class, j)
				assigned[j] = true
			}
		}
		classes = append(classes, class)
	}

	return classes
}

// ClosedClasses returns the communicating classes that no edge leaves.
// Every finite chain has at least one; a chain has a unique stationary
// distribution iff it has exactly one.
func (m *TransitionMatrix) ClosedClasses() [][]int {
	var closed [][]int
	for _, class := range m.CommunicatingClasses() {
		member := make(map[int]bool, len(class))
		for _, s := range class {
			member[s] = true
		}
		isClosed := true
		for _, s := range class {
			for _, nbr := range m.succ[s] {
				if !member[nbr] {
					isClosed = false
					break
				}
			}
			if !isClosed {
				break
			}
		}
		if isClosed {
			closed = append(closed, class)
		}
	}

	return closed
}

// IsIrreducible reports whether every state reaches every other state.
func (m *TransitionMatrix) IsIrreducible() bool {
	return len(m.CommunicatingClasses()) == 1
}

// Period returns the period of the class containing state s: the gcd of the
// lengths of all cycles through the class. A period of 1 means aperiodic;
// 0 means no cycle passes through s at all (a transient state visited once).
//
// Implementation: BFS levels restricted to the class; the period is the gcd
// of level[u] + 1 − level[v] over every class-internal edge u→v.
func (m *TransitionMatrix) Period(s int) (int, error) {
	if err := m.checkState(s); err != nil {
		return 0, fmt.Errorf("chain.Period: %w", err)
	}
	fwd := m.bfs(s)
	inClass := make([]bool, m.n)
	for j := 0; j < m.n; j++ {
		if fwd[j] {
			inClass[j] = m.bfs(j)[s]
		}
	}

	level := make([]int, m.n)
	for j := range level {
		level[j] = -1
	}
	level[s] = 0
	queue := []int{s}
	g := 0
	var cur int
	for len(queue) > 0 {
		cur, queue = queue[0], queue[1:]
		for _, nbr := range m.succ[cur] {
			if !inClass[nbr] {
				continue
			}
			if level[nbr] < 0 {
				level[nbr] = level[cur] + 1
				queue = append(queue, nbr)
				continue
			}
			g = gcd(g, level[cur]+1-level[nbr])
		}
	}

	return g, nil
}

func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}

	return a
}
