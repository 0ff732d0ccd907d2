// Package buffer defines the owning and borrowed byte-buffer types shared by
// the KEM and signature packages.
//
// A buffer's kind is a phantom type parameter. Each family package declares
// its own kinds, so a KEM public key and a signature public key are distinct
// types even though both are backed by a plain byte slice.
package buffer
