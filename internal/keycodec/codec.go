package keycodec

import (
	"encoding"
	"fmt"
	"strconv"
	"sync"

	"github.com/goccy/go-reflect"
)

// Codec converts keys of a single type to and from a canonical text form.
// The text form doubles as the JSON object member name for the key and as
// the projection used by case-insensitive key comparison.
type Codec[K comparable] struct {
	// Encode renders the key in its canonical text form.
	Encode func(K) (string, error)

	// Decode parses the canonical text form back into a key.
	Decode func(string) (K, error)
}

// For returns the codec for the key type K.
// It reports false when K has no canonical text form, which is the case for
// every kind other than string, bool, integer, and float kinds, unless the
// type implements both encoding.TextMarshaler and encoding.TextUnmarshaler.
func For[K comparable]() (Codec[K], bool) {
	typ := reflect.TypeOf((*K)(nil)).Elem()
	ac, ok := getOrCreateKeyCodec(typ)
	if !ok {
		return Codec[K]{}, false
	}
	return Codec[K]{
		Encode: func(k K) (string, error) {
			return ac.encode(k)
		},
		Decode: func(s string) (K, error) {
			v, err := ac.decode(s)
			if err != nil {
				var zero K
				return zero, err
			}
			return v.(K), nil
		},
	}, true
}

type anyCodec struct {
	encode func(any) (string, error)
	decode func(string) (any, error)
}

var (
	// defaultKeyCodecMapMutex is a mutex for the defaultKeyCodecMap.
	defaultKeyCodecMapMutex = sync.RWMutex{}

	// defaultKeyCodecMap caches codecs for different key types.
	// Unsupported types are cached as well so that the kind switch runs once
	// per type.
	defaultKeyCodecMap = map[string]maybeCodec{}
)

type maybeCodec struct {
	codec     anyCodec
	supported bool
}

// getOrCreateKeyCodec retrieves or creates the codec for the given type.
// It uses a map to cache the codecs for different types.
func getOrCreateKeyCodec(typ reflect.Type) (anyCodec, bool) {
	name := typ.String()

	defaultKeyCodecMapMutex.RLock()
	if c, ok := defaultKeyCodecMap[name]; ok {
		defaultKeyCodecMapMutex.RUnlock()
		return c.codec, c.supported
	}

	defaultKeyCodecMapMutex.RUnlock()
	defaultKeyCodecMapMutex.Lock()
	defer defaultKeyCodecMapMutex.Unlock()
	if c, ok := defaultKeyCodecMap[name]; ok {
		return c.codec, c.supported
	}

	codec, supported := createKeyCodec(typ)
	defaultKeyCodecMap[name] = maybeCodec{codec: codec, supported: supported}
	return codec, supported
}

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// createKeyCodec creates the codec for the given type.
// Text-marshaling types take precedence, then the primitive kinds. Named
// types of a primitive kind are converted through reflection.
func createKeyCodec(typ reflect.Type) (anyCodec, bool) {
	if c, ok := createTextCodec(typ); ok {
		return c, true
	}

	switch typ.Kind() {
	case reflect.String:
		return anyCodec{
			encode: func(v any) (string, error) {
				return reflect.ValueOf(v).String(), nil
			},
			decode: func(s string) (any, error) {
				kv := reflect.New(typ).Elem()
				kv.SetString(s)
				return kv.Interface(), nil
			},
		}, true
	case reflect.Bool:
		return anyCodec{
			encode: func(v any) (string, error) {
				return strconv.FormatBool(reflect.ValueOf(v).Bool()), nil
			},
			decode: func(s string) (any, error) {
				b, err := strconv.ParseBool(s)
				if err != nil {
					return nil, fmt.Errorf("invalid %s key %q: %w", typ, s, err)
				}
				kv := reflect.New(typ).Elem()
				kv.SetBool(b)
				return kv.Interface(), nil
			},
		}, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return anyCodec{
			encode: func(v any) (string, error) {
				return strconv.FormatInt(reflect.ValueOf(v).Int(), 10), nil
			},
			decode: func(s string) (any, error) {
				n, err := strconv.ParseInt(s, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid %s key %q: %w", typ, s, err)
				}
				kv := reflect.New(typ).Elem()
				if kv.OverflowInt(n) {
					return nil, fmt.Errorf("invalid %s key %q: overflow", typ, s)
				}
				kv.SetInt(n)
				return kv.Interface(), nil
			},
		}, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return anyCodec{
			encode: func(v any) (string, error) {
				return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10), nil
			},
			decode: func(s string) (any, error) {
				n, err := strconv.ParseUint(s, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid %s key %q: %w", typ, s, err)
				}
				kv := reflect.New(typ).Elem()
				if kv.OverflowUint(n) {
					return nil, fmt.Errorf("invalid %s key %q: overflow", typ, s)
				}
				kv.SetUint(n)
				return kv.Interface(), nil
			},
		}, true
	case reflect.Float32, reflect.Float64:
		bits := 64
		if typ.Kind() == reflect.Float32 {
			bits = 32
		}
		return anyCodec{
			encode: func(v any) (string, error) {
				return strconv.FormatFloat(reflect.ValueOf(v).Float(), 'g', -1, bits), nil
			},
			decode: func(s string) (any, error) {
				f, err := strconv.ParseFloat(s, bits)
				if err != nil {
					return nil, fmt.Errorf("invalid %s key %q: %w", typ, s, err)
				}
				kv := reflect.New(typ).Elem()
				kv.SetFloat(f)
				return kv.Interface(), nil
			},
		}, true
	default:
		return anyCodec{}, false
	}
}

// createTextCodec builds a codec for types that marshal themselves as text.
// Both directions must be available: encoding.TextMarshaler on the type or
// its pointer, and encoding.TextUnmarshaler on the pointer.
func createTextCodec(typ reflect.Type) (anyCodec, bool) {
	ptr := reflect.PtrTo(typ)
	marshalerOnValue := typ.Implements(textMarshalerType)
	marshalerOnPtr := ptr.Implements(textMarshalerType)
	if !marshalerOnValue && !marshalerOnPtr {
		return anyCodec{}, false
	}
	if !ptr.Implements(textUnmarshalerType) {
		return anyCodec{}, false
	}

	encode := func(v any) (string, error) {
		var m encoding.TextMarshaler
		if marshalerOnValue {
			m = v.(encoding.TextMarshaler)
		} else {
			pv := reflect.New(typ)
			pv.Elem().Set(reflect.ValueOf(v))
			m = pv.Interface().(encoding.TextMarshaler)
		}
		b, err := m.MarshalText()
		if err != nil {
			return "", fmt.Errorf("marshal %s key: %w", typ, err)
		}
		return string(b), nil
	}
	decode := func(s string) (any, error) {
		pv := reflect.New(typ)
		if err := pv.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(s)); err != nil {
			return nil, fmt.Errorf("unmarshal %s key %q: %w", typ, s, err)
		}
		return pv.Elem().Interface(), nil
	}
	return anyCodec{encode: encode, decode: decode}, true
}
