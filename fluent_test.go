package orderedmap_test

import (
	"testing"

	orderedmap "github.com/karupanerura/ordered-map"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedMapChaining(t *testing.T) {
	t.Run("with chains sets in call order", func(t *testing.T) {
		om := orderedmap.NewOrderedMap[string, int]().
			With("b", 2).
			With("a", 1).
			With("c", 3)

		assert.Equal(t, []string{"b", "a", "c"}, om.Keys())
		assert.Equal(t, 3, om.Len())
	})

	t.Run("with overwrites like set", func(t *testing.T) {
		om := orderedmap.NewOrderedMap[string, int]().
			With("a", 1).
			With("b", 2).
			With("a", 10)

		assert.Equal(t, []string{"a", "b"}, om.Keys())
		assert.Equal(t, 10, om.Value("a"))
	})

	t.Run("append and prepend entries", func(t *testing.T) {
		om := orderedmap.NewOrderedMap[string, int]().
			AppendEntry(orderedmap.Entry[string, int]{Key: "b", Value: 2}).
			PrependEntry(orderedmap.Entry[string, int]{Key: "a", Value: 1}).
			AppendEntry(orderedmap.Entry[string, int]{Key: "c", Value: 3})

		assert.Equal(t, []string{"a", "b", "c"}, om.Keys())

		v, err := om.At(0)
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	})

	t.Run("chain continues after plain mutations", func(t *testing.T) {
		om := orderedmap.NewOrderedMap[string, int]().With("a", 1)
		om.Set("b", 2)
		om = om.With("c", 3)

		assert.Equal(t, []string{"a", "b", "c"}, om.Keys())
	})
}

func TestOrderedMultiMapChaining(t *testing.T) {
	t.Run("with stacks duplicate keys", func(t *testing.T) {
		om := orderedmap.NewOrderedMultiMap[string, int]().
			With("x", 1).
			With("y", 10).
			With("x", 2)

		assert.Equal(t, []string{"x", "y", "x"}, om.Keys())
		assert.Equal(t, []int{1, 2}, om.GetAll("x"))
		assert.Equal(t, 3, om.Len())
	})

	t.Run("append and prepend entries", func(t *testing.T) {
		om := orderedmap.NewOrderedMultiMap[string, int]().
			AppendEntry(orderedmap.Entry[string, int]{Key: "x", Value: 1}).
			PrependEntry(orderedmap.Entry[string, int]{Key: "x", Value: 0}).
			AppendEntry(orderedmap.Entry[string, int]{Key: "y", Value: 10})

		assert.Equal(t, []string{"x", "x", "y"}, om.Keys())
		assert.Equal(t, []int{0, 1}, om.GetAll("x"))

		v, err := om.At(0)
		require.NoError(t, err)
		assert.Equal(t, 0, v)
	})
}
