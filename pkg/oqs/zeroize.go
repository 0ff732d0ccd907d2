package oqs

import "github.com/hsiuhsiu/oqs-go/pkg/oqs/internal/buffer"

// ZeroizeBytes overwrites buf with zeros. runtime.KeepAlive keeps the stores
// from being eliminated (golang/go#33325). Copies made by the garbage
// collector or by native code are out of reach.
func ZeroizeBytes(buf []byte) {
	buffer.Zero(buf)
}
