// Package ir provides the in-memory representation of space documents.
//
// # Overview
//
// A document is a tree of Nodes. A Node is a tagged union: a LeafType node
// holds text in String, a TreeType node holds an ordered sequence of
// pairs in the parallel slices Fields and Values. Field names need not be
// unique; the order of pairs is significant and preserved by every
// operation which does not explicitly reorder.
//
// All values are text. Numeric or boolean interpretation is left to
// export adapters such as package gomap.
//
// # Lookup
//
// Each tree keeps a cache from a field to the index of its most recently
// written occurrence. Get, Has and Lookup go through the cache, so with
// duplicate fields they resolve to the latest written pair, not the first
// one in sequence order. IndexOf and LastIndexOf scan the sequence.
//
// Code which edits Fields or Values directly must call Reindex.
//
// # Space Paths
//
// A space path names a nested value by joining fields with a single
// space:
//
//	doc.Get("address city")
//	doc.Set("address zip", ir.FromString("94107"))
//	doc.Delete("address")
//
// Fields containing spaces or line feeds cannot be addressed by path.
// Get returns nil when the path resolves to nothing; a leaf holding "",
// "0" or "false" is a result like any other.
//
// # Events
//
// A node can carry listeners subscribed with On. Mutators which notify
// (Append, Create, Set, Delete, DeleteAt, Clear, Rename, Reload) call
// their listeners synchronously after the change, followed by the
// "change" listeners. Put, Remove, SetPair and the remaining helpers are
// silent.
//
// # Parent References
//
// Parent is a non-owning back reference set when a value is attached to a
// tree. When the same value is attached in several places the last one
// wins. Path resolves a node by identity through its parents.
//
// # Thread Safety
//
// Nodes are not safe for concurrent use.
package ir
