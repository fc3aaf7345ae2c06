// Package libdiff computes and applies differences between trees.
//
// A diff is itself a tree: an empty leaf or an empty tree marks a deleted
// field, any other leaf a new value and a non-empty tree the diff of a
// subtree. Patch applies it so that
//
//	Patch(a.Clone(), Diff(a, b))
//
// is Equal to b. Leaves are compared by their text, so an empty leaf in b
// cannot be told apart from a deletion.
//
// DiffOrder and PatchOrder do the same for the order of fields, ignoring
// leaf values.
package libdiff
