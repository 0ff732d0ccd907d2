package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/hsiuhsiu/oqs-go/pkg/oqs"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/keyfile"
	"github.com/hsiuhsiu/oqs-go/pkg/oqs/logging"
)

// readEnvelope reads a key file and checks that it holds the expected family
// and kind.
func readEnvelope(path string, family keyfile.Family, kind keyfile.Kind) (keyfile.File, error) {
	f, err := keyfile.ReadFile(path)
	if err != nil {
		return keyfile.File{}, err
	}
	if err := f.Expect(family, kind); err != nil {
		oqs.ZeroizeBytes(f.Data)
		return keyfile.File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

type output struct {
	path string
	file keyfile.File
}

// writeEnvelopes refuses to start if any target exists and force is unset.
// Secret data is zeroed once written.
func writeEnvelopes(w io.Writer, force bool, outputs ...output) error {
	defer func() {
		for _, o := range outputs {
			if o.file.Kind.Secret() {
				oqs.ZeroizeBytes(o.file.Data)
			}
		}
	}()
	if !force {
		for _, o := range outputs {
			if _, err := os.Stat(o.path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", o.path)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}
	for _, o := range outputs {
		if err := keyfile.WriteFile(o.path, o.file); err != nil {
			return err
		}
		fmt.Fprintf(w, "wrote %s %s to %s\n", o.file.Algorithm, o.file.Kind, o.path)
		data := slog.Int("data_len", len(o.file.Data))
		if o.file.Kind.Secret() {
			data = logging.Redacted("data")
		}
		oqs.Log().Debug(context.Background(), "key file written",
			"path", o.path, "algorithm", o.file.Algorithm, "kind", string(o.file.Kind), data)
	}
	return nil
}

// readMessage reads path, or standard input when path is "-".
func readMessage(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}
