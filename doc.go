// Package art implements an adaptive radix tree (ART), an ordered map
// keyed by arbitrary byte strings.
//
// Inner nodes adapt their representation to their fan-out, using one of
// four fixed-capacity shapes (4, 16, 48 and 256 children), and shared key
// prefixes are path-compressed into a single node. Compared to a balanced
// binary tree the ART offers the same ordered iteration and range scans
// with fewer cache misses, and compared to a hash map it uses less memory
// when keys share prefixes.
//
// Keys are compared byte-wise as unsigned values; this order is also the
// iteration order. The empty key and keys containing NUL bytes are valid.
// A Tree is not safe for concurrent use: callers must serialize mutations,
// and an iterator observing a concurrent mutation has undefined behavior.
package art
