// Package traversal computes projected element timings by walking a BPMN
// process graph forward from its start elements. Joins wait for their
// required sources, loops are bounded per path, multi-instance and loop
// activities expand into several instances, and sub-processes are traversed
// as nested scopes.
package traversal
