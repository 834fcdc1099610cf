package confloader

import "errors"

// ErrReadBytesNotSupported is returned when ReadBytes is called on a map provider.
var ErrReadBytesNotSupported = errors.New("confloader: ReadBytes not supported by map provider, use Read() instead")

// mapProvider is a koanf provider over a map of dotted keys. koanf merges
// maps by nesting, so the keys are unflattened first.
type mapProvider map[string]any

// ReadBytes returns an error as map provider doesn't support byte serialization.
func (m mapProvider) ReadBytes() ([]byte, error) {
	return nil, ErrReadBytesNotSupported
}

// Read returns the configuration as a nested map.
func (m mapProvider) Read() (map[string]any, error) {
	out := make(map[string]any)
	for key, value := range m {
		insert(out, key, value)
	}
	return out, nil
}

func insert(dst map[string]any, key string, value any) {
	for i := 0; i < len(key); i++ {
		if key[i] != '.' {
			continue
		}
		child, ok := dst[key[:i]].(map[string]any)
		if !ok {
			child = make(map[string]any)
			dst[key[:i]] = child
		}
		insert(child, key[i+1:], value)
		return
	}
	dst[key] = value
}
