// SPDX-License-Identifier: MIT

package sim

import (
	"fmt"
	"math"

	"github.com/katalvlaran/markovsim/chain"
)

// DetectBurnIn returns the first step b such that the occupation series is
// stable over the window [b, b+window-1]: every p_k in the window lies within
// eps of the window mean, state by state,
//
//	max_{k∈window} max_s |p_k[s] − mean_window[s]| ≤ eps.
//
// A periodic chain started off its stationary law keeps oscillating, so the
// spread never shrinks and ok is false. Returns (0, false) when trace is
// shorter than window or window < 2.
//
// Complexity: O(len(trace) · window · N).
func DetectBurnIn(trace []chain.Distribution, window int, eps float64) (int, bool) {
	if window < 2 {
		return 0, false
	}
	mean := make([]float64, 0)
	for end := window - 1; end < len(trace); end++ {
		if windowStable(trace, end, window, eps, &mean) {
			return end - window + 1, true
		}
	}

	return 0, false
}

// windowStable checks the window ending at index end. scratch is reused for
// the per-state means between calls.
func windowStable(trace []chain.Distribution, end, window int, eps float64, scratch *[]float64) bool {
	n := len(trace[end])
	if cap(*scratch) < n {
		*scratch = make([]float64, n)
	}
	mean := (*scratch)[:n]
	clear(mean)

	start := end - window + 1
	for k := start; k <= end; k++ {
		for s, v := range trace[k] {
			mean[s] += v
		}
	}
	for s := range mean {
		mean[s] /= float64(window)
	}
	for k := start; k <= end; k++ {
		for s, v := range trace[k] {
			if math.Abs(v-mean[s]) > eps {
				return false
			}
		}
	}

	return true
}

// RunningAverage returns the cumulative time-average of one state's
// occupation: out[t] = (1/(t+1)) Σ_{k≤t} trace[k][state].
//
// This is the classic convergence plot as data: it flattens out around
// π[state] once the chain has mixed.
func RunningAverage(trace []chain.Distribution, state int) ([]float64, error) {
	out := make([]float64, len(trace))
	var acc float64
	for t, p := range trace {
		if state < 0 || state >= len(p) {
			return nil, fmt.Errorf("sim: RunningAverage state %d at step %d: %w", state, t, chain.ErrStateOutOfRange)
		}
		acc += p[state]
		out[t] = acc / float64(t+1)
	}

	return out, nil
}
