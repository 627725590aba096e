// containertest package provides generic test cases for the ordered containers.
package containertest

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/karupanerura/ordered-map"
	"github.com/sourcegraph/conc/panics"
	"golang.org/x/sync/errgroup"
)

// BenchmarkSet benchmarks the Set method of an ordered map.
func BenchmarkSet[K orderedmap.KeyConstraint, V orderedmap.ValueConstraint](b *testing.B, om *orderedmap.OrderedMap[K, V], keys []K) {
	var zero V
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		om.Set(keys[i%len(keys)], zero)
	}
}

// BenchmarkGet benchmarks the Get method of an ordered map.
func BenchmarkGet[K orderedmap.KeyConstraint, V orderedmap.ValueConstraint](b *testing.B, om *orderedmap.OrderedMap[K, V], keys []K) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		om.Get(keys[i%len(keys)])
	}
}

// CheckOrderedMapInvariants cross-checks every order-derived view of the map
// against every store-derived view. Values must be comparable by go-cmp.
func CheckOrderedMapInvariants[K orderedmap.KeyConstraint, V orderedmap.ValueConstraint](t *testing.T, om *orderedmap.OrderedMap[K, V]) {
	t.Helper()

	keys := om.Keys()
	if got, want := om.Len(), len(keys); got != want {
		t.Errorf("Len()=%d but Keys() has %d entries", got, want)
	}
	if got, want := om.IsEmpty(), len(keys) == 0; got != want {
		t.Errorf("IsEmpty()=%v with %d keys", got, len(keys))
	}

	values := om.Values()
	entries := om.Entries()
	if len(values) != len(keys) || len(entries) != len(keys) {
		t.Fatalf("Values() has %d and Entries() has %d elements, want %d", len(values), len(entries), len(keys))
	}

	seen := map[K]struct{}{}
	for i, key := range keys {
		if _, ok := seen[key]; ok {
			t.Errorf("key %v occupies more than one position", key)
		}
		seen[key] = struct{}{}

		if !om.Contains(key) {
			t.Errorf("Contains(%v)=false for a key in the order", key)
		}
		if got := om.Count(key); got != 1 {
			t.Errorf("Count(%v)=%d, want 1", key, got)
		}
		if got := om.IndexOf(key); got != i {
			t.Errorf("IndexOf(%v)=%d, want %d", key, got, i)
		}
		if got := om.KeyAt(i); got != key {
			t.Errorf("KeyAt(%d)=%v, want %v", i, got, key)
		}

		want, ok := om.Get(key)
		if !ok {
			t.Errorf("Get(%v) missing for a key in the order", key)
			continue
		}
		at, err := om.At(i)
		if err != nil {
			t.Errorf("At(%d): %v", i, err)
			continue
		}
		if df := cmp.Diff(want, at); df != "" {
			t.Errorf("At(%d) diff=%s", i, df)
		}
		if df := cmp.Diff(want, values[i]); df != "" {
			t.Errorf("Values()[%d] diff=%s", i, df)
		}
		if df := cmp.Diff(orderedmap.Entry[K, V]{Key: key, Value: want}, entries[i]); df != "" {
			t.Errorf("Entries()[%d] diff=%s", i, df)
		}
	}

	if got, want := len(om.ToMap()), len(keys); got != want {
		t.Errorf("ToMap() has %d entries, want %d", got, want)
	}
	if len(keys) == 0 {
		if df := cmp.Diff(orderedmap.Entry[K, V]{}, om.Last()); df != "" {
			t.Errorf("Last() of empty container diff=%s", df)
		}
	} else {
		if df := cmp.Diff(entries[len(entries)-1], om.Last()); df != "" {
			t.Errorf("Last() diff=%s", df)
		}
	}

	checkOutOfRange(t, om.Len(), func(i int) error { _, err := om.At(i); return err })
}

// CheckOrderedMultiMapInvariants cross-checks every order-derived view of
// the container against every store-derived view, including the alignment
// of order positions with value slots. Values must be comparable by go-cmp.
func CheckOrderedMultiMapInvariants[K orderedmap.KeyConstraint, V orderedmap.ValueConstraint](t *testing.T, om *orderedmap.OrderedMultiMap[K, V]) {
	t.Helper()

	keys := om.Keys()
	if got, want := om.Len(), len(keys); got != want {
		t.Errorf("Len()=%d but Keys() has %d entries", got, want)
	}
	if got, want := om.IsEmpty(), len(keys) == 0; got != want {
		t.Errorf("IsEmpty()=%v with %d keys", got, len(keys))
	}

	counts := map[K]int{}
	firstIndex := map[K]int{}
	var unique []K
	for i, key := range keys {
		if _, ok := firstIndex[key]; !ok {
			firstIndex[key] = i
			unique = append(unique, key)
		}
		counts[key]++
	}

	for _, key := range unique {
		if got, want := om.Count(key), counts[key]; got != want {
			t.Errorf("Count(%v)=%d, but the key occupies %d positions", key, got, want)
		}
		if got, want := len(om.GetAll(key)), counts[key]; got != want {
			t.Errorf("GetAll(%v) has %d values, but the key occupies %d positions", key, got, want)
		}
		if !om.Contains(key) {
			t.Errorf("Contains(%v)=false for a key in the order", key)
		}
		if got, want := om.IndexOf(key), firstIndex[key]; got != want {
			t.Errorf("IndexOf(%v)=%d, want first occurrence %d", key, got, want)
		}
	}
	if df := cmp.Diff(unique, om.UniqueKeys()); df != "" {
		t.Errorf("UniqueKeys() diff=%s", df)
	}

	values := om.Values()
	entries := om.Entries()
	if len(values) != len(keys) || len(entries) != len(keys) {
		t.Fatalf("Values() has %d and Entries() has %d elements, want %d", len(values), len(entries), len(keys))
	}

	slots := map[K]int{}
	for i, key := range keys {
		slot := slots[key]
		slots[key]++

		if got := om.KeyAt(i); got != key {
			t.Errorf("KeyAt(%d)=%v, want %v", i, got, key)
		}
		at, err := om.At(i)
		if err != nil {
			t.Errorf("At(%d): %v", i, err)
			continue
		}
		want := om.GetAll(key)[slot]
		if df := cmp.Diff(want, at); df != "" {
			t.Errorf("At(%d) diff=%s", i, df)
		}
		if df := cmp.Diff(want, values[i]); df != "" {
			t.Errorf("Values()[%d] diff=%s", i, df)
		}
		if df := cmp.Diff(orderedmap.Entry[K, V]{Key: key, Value: want}, entries[i]); df != "" {
			t.Errorf("Entries()[%d] diff=%s", i, df)
		}
	}

	if len(keys) > 0 {
		if df := cmp.Diff(entries[len(entries)-1].Value, om.Last()); df != "" {
			t.Errorf("Last() diff=%s", df)
		}
	}

	checkOutOfRange(t, om.Len(), func(i int) error { _, err := om.At(i); return err })
}

func checkOutOfRange(t *testing.T, length int, at func(int) error) {
	t.Helper()

	if err := at(-1); !errors.Is(err, orderedmap.ErrOutOfRange) {
		t.Errorf("At(-1) must fail with ErrOutOfRange, got: %v", err)
	}
	if err := at(length); !errors.Is(err, orderedmap.ErrOutOfRange) {
		t.Errorf("At(Len()) must fail with ErrOutOfRange, got: %v", err)
	}
}

// TestOrderedMapConsistency runs the generic consistency suite against maps
// built by the provider.
func TestOrderedMapConsistency(t *testing.T, provider func() *orderedmap.OrderedMap[uint8, int8]) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		t.Run("SetAndGet", func(t *testing.T) {
			t.Parallel()

			om := provider()
			patterns := []orderedmap.Entry[uint8, int8]{
				{Key: 0, Value: 1},
				{Key: 1, Value: 2},
				{Key: 2, Value: 3},
				{Key: 3, Value: 4},
				{Key: 4, Value: 5},
				{Key: 251, Value: 124},
				{Key: 252, Value: 125},
				{Key: 253, Value: 126},
				{Key: 254, Value: 127},
				{Key: 255, Value: -128},
			}
			rand.Shuffle(len(patterns), func(i, j int) {
				patterns[i], patterns[j] = patterns[j], patterns[i]
			})

			for _, pattern := range patterns {
				if om.Contains(pattern.Key) {
					t.Errorf("unexpected exists value for key %d", pattern.Key)
				}
			}
			for _, pattern := range patterns {
				om.Set(pattern.Key, pattern.Value)
			}
			CheckOrderedMapInvariants(t, om)

			wantKeys := make([]uint8, len(patterns))
			for i, pattern := range patterns {
				wantKeys[i] = pattern.Key

				got, ok := om.Get(pattern.Key)
				if !ok {
					t.Errorf("key %d must exist", pattern.Key)
				}
				if df := cmp.Diff(pattern.Value, got); df != "" {
					t.Errorf("pattern[%d] key=%d value diff=%s", i, pattern.Key, df)
				}
			}
			if df := cmp.Diff(wantKeys, om.Keys()); df != "" {
				t.Errorf("keys diff=%s", df)
			}
		})

		t.Run("OverwriteKeepsPosition", func(t *testing.T) {
			t.Parallel()

			om := provider()
			for i := uint8(0); i < 8; i++ {
				om.Set(i, int8(i))
			}
			for i := uint8(0); i < 8; i++ {
				om.Set(i, int8(i)+100)
			}
			CheckOrderedMapInvariants(t, om)

			if got := om.Len(); got != 8 {
				t.Errorf("Len()=%d, want 8", got)
			}
			for i := uint8(0); i < 8; i++ {
				if got := om.IndexOf(i); got != int(i) {
					t.Errorf("IndexOf(%d)=%d, want %d", i, got, i)
				}
				if got := om.Value(i); got != int8(i)+100 {
					t.Errorf("Value(%d)=%d, want %d", i, got, int8(i)+100)
				}
			}
		})

		t.Run("RandomOperations", func(t *testing.T) {
			t.Parallel()

			om := provider()
			for i := 0; i < 300; i++ {
				key := uint8(rand.IntN(16))
				value := int8(rand.IntN(127))

				var c panics.Catcher
				c.Try(func() {
					switch rand.IntN(7) {
					case 0:
						om.Set(key, value)
					case 1:
						om.Prepend(key, value)
					case 2:
						om.Remove(key)
					case 3:
						if om.Len() > 0 {
							if _, err := om.RemoveAt(rand.IntN(om.Len())); err != nil {
								t.Errorf("RemoveAt: %v", err)
							}
						}
					case 4:
						if om.Len() > 0 {
							if _, err := om.ReplaceAt(rand.IntN(om.Len()), value); err != nil {
								t.Errorf("ReplaceAt: %v", err)
							}
						}
					case 5:
						if _, err := om.RemoveLast(); err != nil && !errors.Is(err, orderedmap.ErrEmptyContainer) {
							t.Errorf("RemoveLast: %v", err)
						}
					case 6:
						if rand.IntN(8) == 0 {
							om.Clear()
						} else {
							om.Set(key, value)
						}
					}
				})
				if r := c.Recovered(); r != nil {
					t.Fatalf("operation panicked: %v", r.AsError())
				}

				CheckOrderedMapInvariants(t, om)
			}
		})

		t.Run("ConcurrentReaders", func(t *testing.T) {
			t.Parallel()

			om := provider()
			for i := uint8(0); i < 100; i++ {
				om.Set(i, int8(i))
			}
			want := om.Entries()

			var eg errgroup.Group
			for range 8 {
				eg.Go(func() error {
					if df := cmp.Diff(want, om.Entries()); df != "" {
						return fmt.Errorf("entries diff=%s", df)
					}
					for _, entry := range want {
						got, ok := om.Get(entry.Key)
						if !ok {
							return fmt.Errorf("key %d must exist", entry.Key)
						}
						if got != entry.Value {
							return fmt.Errorf("key %d: got %d, want %d", entry.Key, got, entry.Value)
						}
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}
		})
	})
}

// TestOrderedMultiMapConsistency runs the generic consistency suite against
// containers built by the provider.
func TestOrderedMultiMapConsistency(t *testing.T, provider func() *orderedmap.OrderedMultiMap[uint8, int8]) {
	t.Run("Consistency", func(t *testing.T) {
		t.Parallel()

		t.Run("AddKeepsEveryValue", func(t *testing.T) {
			t.Parallel()

			om := provider()
			om.Add(1, 10)
			om.Add(2, 20)
			om.Add(1, 11)
			om.Add(3, 30)
			om.Add(1, 12)
			CheckOrderedMultiMapInvariants(t, om)

			if df := cmp.Diff([]uint8{1, 2, 1, 3, 1}, om.Keys()); df != "" {
				t.Errorf("keys diff=%s", df)
			}
			if df := cmp.Diff([]int8{10, 11, 12}, om.GetAll(1)); df != "" {
				t.Errorf("values diff=%s", df)
			}
			if got := om.Count(1); got != 3 {
				t.Errorf("Count(1)=%d, want 3", got)
			}
			if got := om.Len(); got != 5 {
				t.Errorf("Len()=%d, want 5", got)
			}
		})

		t.Run("PrependAlignsSlots", func(t *testing.T) {
			t.Parallel()

			om := provider()
			om.Add(1, 10)
			om.Add(2, 20)
			om.Prepend(1, 9)
			CheckOrderedMultiMapInvariants(t, om)

			if df := cmp.Diff([]uint8{1, 1, 2}, om.Keys()); df != "" {
				t.Errorf("keys diff=%s", df)
			}
			if df := cmp.Diff([]int8{9, 10}, om.GetAll(1)); df != "" {
				t.Errorf("values diff=%s", df)
			}
			if got := om.ValueAt(0); got != 9 {
				t.Errorf("ValueAt(0)=%d, want 9", got)
			}
		})

		t.Run("ReplaceKeepsPositions", func(t *testing.T) {
			t.Parallel()

			om := provider()
			om.Add(1, 10)
			om.Add(2, 20)
			om.Add(1, 11)
			om.Replace(1, 99)
			CheckOrderedMultiMapInvariants(t, om)

			if df := cmp.Diff([]uint8{1, 2, 1}, om.Keys()); df != "" {
				t.Errorf("keys diff=%s", df)
			}
			if df := cmp.Diff([]int8{10, 99}, om.GetAll(1)); df != "" {
				t.Errorf("values diff=%s", df)
			}
			if got := om.Len(); got != 3 {
				t.Errorf("Len()=%d, want 3", got)
			}
		})

		t.Run("RemoveDropsEveryValue", func(t *testing.T) {
			t.Parallel()

			om := provider()
			om.Add(1, 10)
			om.Add(2, 20)
			om.Add(1, 11)
			if got := om.Remove(1); got != 2 {
				t.Errorf("Remove(1)=%d, want 2", got)
			}
			CheckOrderedMultiMapInvariants(t, om)

			if df := cmp.Diff([]uint8{2}, om.Keys()); df != "" {
				t.Errorf("keys diff=%s", df)
			}
			if got := om.Remove(1); got != 0 {
				t.Errorf("Remove(1) of an absent key=%d, want 0", got)
			}
		})

		t.Run("RandomOperations", func(t *testing.T) {
			t.Parallel()

			om := provider()
			for i := 0; i < 300; i++ {
				key := uint8(rand.IntN(8))
				value := int8(rand.IntN(127))

				var c panics.Catcher
				c.Try(func() {
					switch rand.IntN(8) {
					case 0:
						om.Add(key, value)
					case 1:
						om.Prepend(key, value)
					case 2:
						om.Replace(key, value)
					case 3:
						om.Remove(key)
					case 4:
						if om.Len() > 0 {
							if _, err := om.RemoveAt(rand.IntN(om.Len())); err != nil {
								t.Errorf("RemoveAt: %v", err)
							}
						}
					case 5:
						if om.Len() > 0 {
							if _, err := om.ReplaceAt(rand.IntN(om.Len()), value); err != nil {
								t.Errorf("ReplaceAt: %v", err)
							}
						}
					case 6:
						if _, err := om.RemoveLast(); err != nil && !errors.Is(err, orderedmap.ErrEmptyContainer) {
							t.Errorf("RemoveLast: %v", err)
						}
					case 7:
						if rand.IntN(8) == 0 {
							om.Clear()
						} else {
							om.Add(key, value)
						}
					}
				})
				if r := c.Recovered(); r != nil {
					t.Fatalf("operation panicked: %v", r.AsError())
				}

				CheckOrderedMultiMapInvariants(t, om)
			}
		})

		t.Run("ConcurrentReaders", func(t *testing.T) {
			t.Parallel()

			om := provider()
			for i := 0; i < 100; i++ {
				om.Add(uint8(i%10), int8(i))
			}
			want := om.Entries()

			var eg errgroup.Group
			for range 8 {
				eg.Go(func() error {
					if df := cmp.Diff(want, om.Entries()); df != "" {
						return fmt.Errorf("entries diff=%s", df)
					}
					for key := uint8(0); key < 10; key++ {
						if got := om.Count(key); got != 10 {
							return fmt.Errorf("Count(%d)=%d, want 10", key, got)
						}
					}
					return nil
				})
			}
			if err := eg.Wait(); err != nil {
				t.Fatal(err)
			}
		})
	})
}

type TestClonerStruct struct {
	value int8
}

func (s *TestClonerStruct) Clone() *TestClonerStruct {
	return &TestClonerStruct{value: s.value}
}

// TestMapCloning tests the value cloning behavior of maps built by the
// provider, which must configure a cloner for *TestClonerStruct values.
func TestMapCloning(t *testing.T, provider func() *orderedmap.OrderedMap[uint8, *TestClonerStruct]) {
	t.Run("CloneStruct", func(t *testing.T) {
		t.Parallel()

		om := provider()
		original := &TestClonerStruct{value: 1}
		om.Set(1, original)

		got, ok := om.Get(1)
		if !ok {
			t.Fatal("key must exist")
		}
		if original == got {
			t.Error("struct must be cloned, but got same that")
		}
		if df := cmp.Diff(original, got, cmp.AllowUnexported(TestClonerStruct{})); df != "" {
			t.Errorf("struct diff=%s", df)
		}

		before := got
		got, ok = om.Get(1)
		if !ok {
			t.Fatal("key must exist")
		}
		if before == got {
			t.Error("struct must be cloned, but got same that")
		}
		if df := cmp.Diff(before, got, cmp.AllowUnexported(TestClonerStruct{})); df != "" {
			t.Errorf("struct diff=%s", df)
		}
	})
}

type TestDeepCopyerStruct struct {
	value int8
}

func (s *TestDeepCopyerStruct) DeepCopy() *TestDeepCopyerStruct {
	return &TestDeepCopyerStruct{value: s.value}
}

// TestMultiMapCloning tests the value cloning behavior of containers built
// by the provider, which must configure a cloner for *TestDeepCopyerStruct
// values.
func TestMultiMapCloning(t *testing.T, provider func() *orderedmap.OrderedMultiMap[uint8, *TestDeepCopyerStruct]) {
	t.Run("DeepCopyStruct", func(t *testing.T) {
		t.Parallel()

		om := provider()
		original := &TestDeepCopyerStruct{value: 1}
		om.Add(1, original)

		all := om.GetAll(1)
		if len(all) != 1 {
			t.Fatalf("GetAll(1) has %d values, want 1", len(all))
		}
		if original == all[0] {
			t.Error("struct must be cloned, but got same that")
		}
		if df := cmp.Diff(original, all[0], cmp.AllowUnexported(TestDeepCopyerStruct{})); df != "" {
			t.Errorf("struct diff=%s", df)
		}

		before := all[0]
		got, ok := om.Get(1)
		if !ok {
			t.Fatal("key must exist")
		}
		if before == got {
			t.Error("struct must be cloned, but got same that")
		}
		if df := cmp.Diff(before, got, cmp.AllowUnexported(TestDeepCopyerStruct{})); df != "" {
			t.Errorf("struct diff=%s", df)
		}
	})
}
