package orderedmap

import (
	"strings"

	"github.com/karupanerura/ordered-map/internal/keycodec"
)

// ContainsFold reports whether the map holds a key equal to the given key
// under Unicode case-folding. Only textual key types have a case to fold,
// so the constraint rejects other key types at compile time.
func ContainsFold[K TextKeyConstraint, V ValueConstraint](om *OrderedMap[K, V], key K) bool {
	for k := range om.store {
		if strings.EqualFold(string(k), string(key)) {
			return true
		}
	}
	return false
}

// ContainsFold reports whether the container holds a key whose canonical
// text form equals the given key's under Unicode case-folding.
// Key types without a canonical text form always report false.
func (om *OrderedMultiMap[K, V]) ContainsFold(key K) bool {
	codec, ok := keycodec.For[K]()
	if !ok {
		return false
	}

	want, err := codec.Encode(key)
	if err != nil {
		return false
	}
	for k := range om.store {
		text, err := codec.Encode(k)
		if err != nil {
			continue
		}
		if strings.EqualFold(text, want) {
			return true
		}
	}
	return false
}
