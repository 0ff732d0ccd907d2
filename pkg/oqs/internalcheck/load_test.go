package internalcheck

import (
	"testing"

	"golang.org/x/tools/go/packages"
)

// checkedPackages are loaded with the default build tags, so they reflect the
// pure-Go registry build. The cgo file is covered by TestOnlyBackendImportsC.
var checkedPackages = []string{
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/...",
	"github.com/hsiuhsiu/oqs-go/cmd/...",
}

func loadPackages(t *testing.T, mode packages.LoadMode) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{Mode: mode | packages.NeedSyntax | packages.NeedFiles | packages.NeedName}
	pkgs, err := packages.Load(cfg, checkedPackages...)
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatal("packages contain errors")
	}
	return pkgs
}
