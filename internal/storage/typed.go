package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

// TypedReader decodes individual values from a KVStore.
//
// Values are JSON scalars or containers (["a","b"], true, 3, 1.7e9,
// {"k": 1.5}). Every accessor reports ok == false when the key is
// missing, unreadable or holds a value of another type. Read failures
// other than ErrKeyNotFound are also recorded and reported by Err.
type TypedReader struct {
	kv  KVStore
	err error
}

// NewTypedReader returns a reader over kv.
func NewTypedReader(kv KVStore) *TypedReader {
	return &TypedReader{kv: kv}
}

// Err returns the read failures seen so far, excluding missing keys.
func (r *TypedReader) Err() error {
	return r.err
}

// Has reports whether key holds any value.
func (r *TypedReader) Has(ctx context.Context, key string) bool {
	_, ok := r.raw(ctx, key)
	return ok
}

// StringSlice reads a JSON array of strings.
func (r *TypedReader) StringSlice(ctx context.Context, key string) ([]string, bool) {
	var out []string
	if !r.decode(ctx, key, &out) || out == nil {
		return nil, false
	}
	return out, true
}

// String reads a JSON string.
func (r *TypedReader) String(ctx context.Context, key string) (string, bool) {
	var out string
	if !r.decode(ctx, key, &out) {
		return "", false
	}
	return out, true
}

// Bool reads a JSON boolean. Numbers are accepted as well, non-zero
// meaning true.
func (r *TypedReader) Bool(ctx context.Context, key string) (bool, bool) {
	var v any
	if !r.decode(ctx, key, &v) {
		return false, false
	}
	switch b := v.(type) {
	case bool:
		return b, true
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	default:
		return false, false
	}
}

// Int reads a JSON number, truncating any fractional part.
func (r *TypedReader) Int(ctx context.Context, key string) (int, bool) {
	f, ok := r.Float64(ctx, key)
	if !ok || f >= math.MaxInt64 || f <= math.MinInt64 {
		return 0, false
	}
	return int(f), true
}

// Float64 reads a JSON number.
func (r *TypedReader) Float64(ctx context.Context, key string) (float64, bool) {
	var n json.Number
	if !r.decode(ctx, key, &n) {
		return 0, false
	}
	f, err := n.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Time reads a number of seconds since the Unix epoch. Values outside
// years 0 through 9999 are treated as absent.
func (r *TypedReader) Time(ctx context.Context, key string) (time.Time, bool) {
	secs, ok := r.Float64(ctx, key)
	if !ok {
		return time.Time{}, false
	}
	return EpochTime(secs)
}

// Float64Map reads a JSON object whose values are all numbers.
func (r *TypedReader) Float64Map(ctx context.Context, key string) (map[string]float64, bool) {
	var out map[string]float64
	if !r.decode(ctx, key, &out) || out == nil {
		return nil, false
	}
	return out, true
}

func (r *TypedReader) raw(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			r.err = errors.Join(r.err, fmt.Errorf("read %s: %w", key, err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (r *TypedReader) decode(ctx context.Context, key string, target any) bool {
	data, ok := r.raw(ctx, key)
	if !ok {
		return false
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(target); err != nil {
		return false
	}
	// Trailing garbage means the value was not what we think it is.
	return !dec.More()
}

// PutValue JSON-encodes v and stores it under key.
func PutValue(ctx context.Context, kv KVStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

// TimeFromEpochSeconds converts fractional epoch seconds to a UTC time.
func TimeFromEpochSeconds(secs float64) time.Time {
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC()
}

var (
	minEpochSeconds = float64(time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	maxEpochSeconds = float64(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
)

// EpochTime is TimeFromEpochSeconds limited to years 0 through 9999, the
// range a time survives JSON encoding in. Milliseconds stored by mistake
// land far outside it.
func EpochTime(secs float64) (time.Time, bool) {
	if math.IsNaN(secs) || secs < minEpochSeconds || secs >= maxEpochSeconds {
		return time.Time{}, false
	}
	return TimeFromEpochSeconds(secs), true
}

// EpochSeconds converts t to fractional seconds since the Unix epoch.
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
