package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/kem"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/sig"
)

var errMismatch = errors.New("round trip mismatch")

type selftestResult struct {
	family   string
	name     string
	skipped  bool
	err      error
	duration time.Duration
}

type selftestCase struct {
	family string
	name   string
	slow   bool
	run    func() error
}

func newSelftestCommand() *cobra.Command {
	var (
		all      bool
		parallel int
	)
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Round-trip every enabled algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := runSelftest(cmd.Context(), selftestCases(), all, parallel)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			var failed int
			for _, r := range results {
				switch {
				case r.skipped:
					fmt.Fprintf(w, "SKIP %s %s (slow, use --all)\n", r.family, r.name)
				case r.err != nil:
					failed++
					fmt.Fprintf(w, "FAIL %s %s: %v\n", r.family, r.name, r.err)
				default:
					fmt.Fprintf(w, "ok   %s %s (%s)\n", r.family, r.name, r.duration.Round(time.Millisecond))
				}
			}
			if failed > 0 {
				return fmt.Errorf("selftest: %d of %d algorithms failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include slow parameter sets (Classic McEliece, SPHINCS+ s)")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", runtime.GOMAXPROCS(0), "number of algorithms tested concurrently")
	return cmd
}

func selftestCases() []selftestCase {
	var cases []selftestCase
	for _, alg := range kem.Algorithms() {
		if !alg.IsEnabled() {
			continue
		}
		cases = append(cases, selftestCase{
			family: "kem",
			name:   alg.Identifier(),
			slow:   strings.HasPrefix(alg.Identifier(), "Classic-McEliece"),
			run:    func() error { return kemRoundTrip(alg) },
		})
	}
	for _, alg := range sig.Algorithms() {
		if !alg.IsEnabled() {
			continue
		}
		id := alg.Identifier()
		cases = append(cases, selftestCase{
			family: "sig",
			name:   id,
			slow:   strings.HasPrefix(id, "SPHINCS+") && strings.HasSuffix(id, "s-simple"),
			run:    func() error { return sigRoundTrip(alg) },
		})
	}
	return cases
}

// runSelftest runs cases with at most parallel in flight. A failing case does
// not stop the others; only context cancellation does.
func runSelftest(ctx context.Context, cases []selftestCase, all bool, parallel int) ([]selftestResult, error) {
	if parallel < 1 {
		parallel = 1
	}
	results := make([]selftestResult, len(cases))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, c := range cases {
		results[i] = selftestResult{family: c.family, name: c.name}
		if c.slow && !all {
			results[i].skipped = true
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			results[i].err = c.run()
			results[i].duration = time.Since(start)
			if results[i].err != nil {
				oqs.Log().Error(ctx, "selftest failed", "family", c.family, "algorithm", c.name, "error", results[i].err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func kemRoundTrip(alg kem.Algorithm) error {
	k, err := kem.New(alg)
	if err != nil {
		return err
	}
	defer k.Free()

	pk, sk, err := k.Keypair()
	if err != nil {
		return err
	}
	defer sk.Free()
	ct, ss, err := k.Encapsulate(pk)
	if err != nil {
		return err
	}
	defer ss.Free()
	ss2, err := k.Decapsulate(sk, ct)
	if err != nil {
		return err
	}
	defer ss2.Free()
	if !ss.Equal(ss2) {
		return errMismatch
	}
	return nil
}

func sigRoundTrip(alg sig.Algorithm) error {
	s, err := sig.New(alg)
	if err != nil {
		return err
	}
	defer s.Free()

	pk, sk, err := s.Keypair()
	if err != nil {
		return err
	}
	defer sk.Free()
	msg := []byte("oqs-go selftest")
	signature, err := s.Sign(msg, sk)
	if err != nil {
		return err
	}
	if err := s.Verify(msg, signature, pk); err != nil {
		return err
	}
	if err := s.Verify([]byte("oqs-go selftest tampered"), signature, pk); err == nil {
		return fmt.Errorf("%w: tampered message verified", errMismatch)
	}
	return nil
}
