// Package logging is the logging facade used by oqs-go.
//
// Logger wraps the subset of log/slog the module needs. Applications install
// their own with oqs.SetLogger; the default forwards to slog.Default():
//
//	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	oqs.SetLogger(logging.New(slog.New(handler)))
//
// # Key material
//
// Nothing in oqs-go logs buffer contents. Attributes that would carry a
// secret are replaced by Redacted, and buffers are logged through Size,
// which records the kind and length only:
//
//	logger.Debug(ctx, "keypair generated", logging.Size("secret_key", sk), logging.Redacted("seed"))
package logging
