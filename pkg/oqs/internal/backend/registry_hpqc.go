//go:build cgo && !liboqs

package backend

import (
	hpqckem "github.com/katzenpost/hpqc/kem"
	"github.com/katzenpost/hpqc/kem/schemes"
)

// hpqc's scheme registry links cgo-only schemes, so Classic McEliece is only
// offered by cgo builds of the Go registry. Schemes the linked hpqc release
// does not know are left out and therefore report as disabled.
func init() {
	for _, e := range []struct {
		id    string
		name  string
		level uint8
	}{
		{"Classic-McEliece-348864", "mceliece348864", 1},
		{"Classic-McEliece-348864f", "mceliece348864f", 1},
		{"Classic-McEliece-460896", "mceliece460896", 3},
		{"Classic-McEliece-460896f", "mceliece460896f", 3},
		{"Classic-McEliece-6688128", "mceliece6688128", 5},
		{"Classic-McEliece-6688128f", "mceliece6688128f", 5},
		{"Classic-McEliece-6960119", "mceliece6960119", 5},
		{"Classic-McEliece-6960119f", "mceliece6960119f", 5},
		{"Classic-McEliece-8192128", "mceliece8192128", 5},
		{"Classic-McEliece-8192128f", "mceliece8192128f", 5},
	} {
		s := schemes.ByName(e.name)
		if s == nil {
			continue
		}
		registerKEM(kemEntryFor[hpqckem.PublicKey, hpqckem.PrivateKey](e.id, "round4 (hpqc "+s.Name()+")", e.level, s))
	}
}
