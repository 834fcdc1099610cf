package logger

import (
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// MaxPayloadPreview is how many bytes of a raw payload are logged.
const MaxPayloadPreview = 64

// shortenPayload renders []byte attribute values as a bounded, quoted
// preview. Corrupt snapshot bytes can be arbitrarily large or binary.
func shortenPayload(a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindAny:
		if b, ok := a.Value.Any().([]byte); ok {
			return slog.String(a.Key, Preview(b))
		}
	case slog.KindGroup:
		attrs := a.Value.Group()
		out := make([]slog.Attr, len(attrs))
		for i, attr := range attrs {
			out[i] = shortenPayload(attr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(out...)}
	}
	return a
}

// Preview returns a quoted, bounded rendering of b suitable for logs.
func Preview(b []byte) string {
	if len(b) <= MaxPayloadPreview {
		return fmt.Sprintf("%q", b)
	}
	cut := MaxPayloadPreview
	// Do not split a multi-byte rune.
	for cut > 0 && !utf8.RuneStart(b[cut]) {
		cut--
	}
	return fmt.Sprintf("%q...(%d bytes)", b[:cut], len(b))
}
