/*
Package derive provides memoized derivations over immutable state snapshots.

A derivation is a pure function of the outputs of other derivations. It re-runs only when one
of those outputs changed since the previous call, so large derived structures (menus, lists)
keep their identity between calls and consumers can compare them cheaply.

	width := derive.Leaf("width", func(t *Tree) int { return t.Screen.Width })
	compact := derive.Derive1(width, func(w int) bool { return w < 400 }, derive.WithName("compact"))

	compact.Select(tree) // runs the combiner
	compact.Select(tree) // cached

Inputs are compared with Same: identity for pointers, maps and slices, == for comparable values.
Derivations never perform side effects; anything that must happen later is returned as data.
*/
package derive
