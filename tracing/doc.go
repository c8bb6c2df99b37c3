// Package tracing wraps OpenTelemetry so that loading, traversal, transform
// and paint passes can be traced without the callers importing the SDK.
package tracing
