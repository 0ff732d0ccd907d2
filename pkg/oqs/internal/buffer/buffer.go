package buffer

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"runtime"
)

// Kind classifies a buffer. Implementations are zero-size types declared by
// the family packages.
type Kind interface {
	// Name is the human readable kind, e.g. "kem.SecretKey".
	Name() string
	// Secret reports whether the contents are key material that must be
	// zeroed on release and never printed.
	Secret() bool
}

// View is satisfied by both Owned and Ref. Operations accept a View so callers
// can pass either without copying.
type View[K Kind] interface {
	Borrow() Ref[K]
}

// Owned is a heap buffer of one kind. The zero value is an empty buffer.
type Owned[K Kind] struct {
	b []byte
	// guard carries the zeroing finalizer of secret kinds. It lives in its
	// own allocation so an Owned embedded in a larger struct can still have
	// one.
	guard *guard
}

type guard struct {
	b []byte
}

func zeroGuard(g *guard) { Zero(g.b) }

// Ref is a non-owning view. A Ref taken from an Owned buffer is only valid
// while that buffer is reachable and not freed; a Ref over caller memory is
// valid while the caller leaves the slice unmodified.
type Ref[K Kind] struct {
	b []byte
}

// Wrap takes ownership of b without copying. Secret kinds are zeroed if Free
// is never called.
func Wrap[K Kind](b []byte) *Owned[K] {
	o := &Owned[K]{}
	o.set(b)
	return o
}

// set installs b as the storage. Secret kinds get a guard that zeroes b once
// the Owned becomes unreachable.
func (o *Owned[K]) set(b []byte) {
	o.b = b
	var k K
	if k.Secret() {
		o.guard = &guard{b: b}
		runtime.SetFinalizer(o.guard, zeroGuard)
	}
}

// Borrow wraps b without copying. Length validation is the caller's job.
func Borrow[K Kind](b []byte) Ref[K] {
	return Ref[K]{b: b}
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Bytes returns a copy of the contents.
func (o *Owned[K]) Bytes() []byte {
	if o == nil || o.b == nil {
		return nil
	}
	out := make([]byte, len(o.b))
	copy(out, o.b)
	return out
}

// Len returns the buffer length in bytes.
func (o *Owned[K]) Len() int {
	if o == nil {
		return 0
	}
	return len(o.b)
}

// Borrow returns a view of the owned storage.
func (o *Owned[K]) Borrow() Ref[K] {
	if o == nil {
		return Ref[K]{}
	}
	return Ref[K]{b: o.b}
}

// Equal compares in constant time with respect to the contents.
func (o *Owned[K]) Equal(other View[K]) bool {
	return o.Borrow().Equal(other)
}

// Clone returns an independent copy.
func (o *Owned[K]) Clone() *Owned[K] {
	return Wrap[K](o.Bytes())
}

// Free zeroes the storage of secret kinds and releases it. Free is idempotent
// and the buffer reads as empty afterwards.
func (o *Owned[K]) Free() {
	if o == nil {
		return
	}
	var k K
	if k.Secret() {
		Zero(o.b)
	}
	if o.guard != nil {
		runtime.SetFinalizer(o.guard, nil)
		o.guard = nil
	}
	o.b = nil
}

// MarshalBinary returns a copy of the contents.
func (o *Owned[K]) MarshalBinary() ([]byte, error) {
	return o.Bytes(), nil
}

// UnmarshalBinary replaces the contents with a copy of data. Length is not
// checked here; pass the result through the owning handle's FromBytes gate.
// Secret kinds are zeroed when the buffer becomes unreachable, as with Wrap.
func (o *Owned[K]) UnmarshalBinary(data []byte) error {
	o.Free()
	b := make([]byte, len(data))
	copy(b, data)
	o.set(b)
	return nil
}

// MarshalText encodes the contents as standard base64.
func (o *Owned[K]) MarshalText() ([]byte, error) {
	n := base64.StdEncoding.EncodedLen(o.Len())
	out := make([]byte, n)
	base64.StdEncoding.Encode(out, o.Borrow().b)
	return out, nil
}

// UnmarshalText decodes standard base64.
func (o *Owned[K]) UnmarshalText(text []byte) error {
	b := make([]byte, base64.StdEncoding.DecodedLen(len(text)))
	n, err := base64.StdEncoding.Decode(b, text)
	if err != nil {
		Zero(b)
		var k K
		return fmt.Errorf("%s: decode base64: %w", k.Name(), err)
	}
	err = o.UnmarshalBinary(b[:n])
	Zero(b)
	return err
}

// String never prints contents. Secret kinds are redacted and public kinds
// show only their length.
func (o *Owned[K]) String() string {
	return describe[K](o.Len())
}

// Bytes returns the borrowed slice itself.
func (r Ref[K]) Bytes() []byte { return r.b }

// Len returns the view length in bytes.
func (r Ref[K]) Len() int { return len(r.b) }

// Borrow returns r.
func (r Ref[K]) Borrow() Ref[K] { return r }

// Equal compares in constant time with respect to the contents.
func (r Ref[K]) Equal(other View[K]) bool {
	if other == nil {
		return false
	}
	ob := other.Borrow().b
	if len(r.b) != len(ob) {
		return false
	}
	return subtle.ConstantTimeCompare(r.b, ob) == 1
}

// ToOwned copies the view into an owned buffer.
func (r Ref[K]) ToOwned() *Owned[K] {
	b := make([]byte, len(r.b))
	copy(b, r.b)
	return Wrap[K](b)
}

func (r Ref[K]) String() string {
	return describe[K](len(r.b))
}

func describe[K Kind](n int) string {
	var k K
	if k.Secret() {
		return fmt.Sprintf("%s([redacted], len=%d)", k.Name(), n)
	}
	return fmt.Sprintf("%s(len=%d)", k.Name(), n)
}

// Exact borrows b if it is exactly n bytes long.
func Exact[K Kind](b []byte, n int) (Ref[K], bool) {
	if len(b) != n {
		return Ref[K]{}, false
	}
	return Ref[K]{b: b}, true
}

// AtMost borrows b if it is at most n bytes long.
func AtMost[K Kind](b []byte, n int) (Ref[K], bool) {
	if len(b) > n {
		return Ref[K]{}, false
	}
	return Ref[K]{b: b}, true
}
