// Package progress defines primitives for reporting the progress of a
// traversal pass: how many element visits were processed, how many timings
// were emitted and how many tokens were absorbed at joins or cut off at the
// loop-depth bound. Callers consume updates through an onChange callback
// regardless of which pipeline stage produced them.
package progress
