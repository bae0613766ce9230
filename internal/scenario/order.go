package scenario

import "sort"

// sortedKeys returns m's keys in ascending order. Go randomises map
// iteration order on every range, independent of the scenario's RNG stream;
// anywhere a loop over farms/cows/setts/badgers feeds an RNG draw, iterating
// in map order would make the draw sequence — and so the simulated
// trajectory — depend on that randomisation instead of only on the seed the
// Context's RNG was created with, breaking §4.1's "deterministic given the RNG
// seed" invariant. Every such loop iterates sortedKeys(m) instead of ranging m
// directly.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
