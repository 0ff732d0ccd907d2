// Package internalcheck holds static policy tests over the module's own
// source. It has no exported API.
//
// The tests enforce three rules: byte slices holding key material are never
// compared with ==, secrets are never hex formatted, and only
// pkg/oqs/internal/backend imports "C".
package internalcheck
