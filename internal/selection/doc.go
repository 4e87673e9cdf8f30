// Package selection picks subsets of foods that maximize protein within a
// calorie budget.
//
// Filter bounds a catalog to a small candidate set. Greedy is a fast
// heuristic with no optimality guarantee. Exhaustive enumerates all 2^n
// subsets of the candidates and returns a provably optimal one; it refuses
// to run on 64 or more candidates. Sum totals calories and protein and is
// shared by both selectors.
//
// Every function here is pure: inputs are never modified and there is no
// package state.
package selection
