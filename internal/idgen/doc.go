// Package idgen issues run identifiers. Callers treat them as opaque strings.
package idgen
