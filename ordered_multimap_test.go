package orderedmap_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	orderedmap "github.com/karupanerura/ordered-map"
)

func TestOrderedMultiMapAdd(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)

	if diff := cmp.Diff([]string{"x", "y", "x"}, om.Keys()); diff != "" {
		t.Errorf("unexpected keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, om.GetAll("x")); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
	if got := om.Len(); got != 3 {
		t.Errorf("unexpected length: got %d, want 3", got)
	}
	if got := om.Count("x"); got != 2 {
		t.Errorf("unexpected count: got %d, want 2", got)
	}
	if got := om.Count("z"); got != 0 {
		t.Errorf("unexpected count: got %d, want 0", got)
	}
}

func TestOrderedMultiMapPrepend(t *testing.T) {
	t.Parallel()

	t.Run("new key goes to the front", func(t *testing.T) {
		t.Parallel()

		om := orderedmap.NewOrderedMultiMap[string, int]()
		om.Add("b", 2)
		om.Prepend("a", 1)

		if diff := cmp.Diff([]string{"a", "b"}, om.Keys()); diff != "" {
			t.Errorf("unexpected keys (-want +got):\n%s", diff)
		}
	})

	t.Run("existing key gains a front position", func(t *testing.T) {
		t.Parallel()

		om := orderedmap.NewOrderedMultiMap[string, int]()
		om.Add("x", 1)
		om.Add("y", 10)
		om.Prepend("x", 0)

		if diff := cmp.Diff([]string{"x", "x", "y"}, om.Keys()); diff != "" {
			t.Errorf("unexpected keys (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{0, 1}, om.GetAll("x")); diff != "" {
			t.Errorf("the prepended value must become the first slot (-want +got):\n%s", diff)
		}
		if got := om.ValueAt(0); got != 0 {
			t.Errorf("unexpected value at the front: got %d, want 0", got)
		}
		if got := om.ValueAt(1); got != 1 {
			t.Errorf("unexpected value at the second position: got %d, want 1", got)
		}
	})
}

func TestOrderedMultiMapReplace(t *testing.T) {
	t.Parallel()

	t.Run("replaces the last slot in place", func(t *testing.T) {
		t.Parallel()

		om := orderedmap.NewOrderedMultiMap[string, int]()
		om.Add("x", 1)
		om.Add("y", 10)
		om.Add("x", 2)
		om.Replace("x", 99)

		if diff := cmp.Diff([]string{"x", "y", "x"}, om.Keys()); diff != "" {
			t.Errorf("the order must be untouched (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{1, 99}, om.GetAll("x")); diff != "" {
			t.Errorf("unexpected values (-want +got):\n%s", diff)
		}
		if got := om.Len(); got != 3 {
			t.Errorf("the slot count must be untouched: got %d, want 3", got)
		}
	})

	t.Run("absent key behaves like Add", func(t *testing.T) {
		t.Parallel()

		om := orderedmap.NewOrderedMultiMap[string, int]()
		om.Add("x", 1)
		om.Replace("y", 10)

		if diff := cmp.Diff([]string{"x", "y"}, om.Keys()); diff != "" {
			t.Errorf("unexpected keys (-want +got):\n%s", diff)
		}
		if got := om.Value("y"); got != 10 {
			t.Errorf("unexpected value: got %d, want 10", got)
		}
	})
}

func TestOrderedMultiMapPositions(t *testing.T) {
	t.Parallel()

	// Interleaved keys: each position addresses one value slot.
	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)
	om.Add("y", 20)

	for i, want := range []int{1, 10, 2, 20} {
		got, err := om.At(i)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("unexpected value at %d: got %d, want %d", i, got, want)
		}
	}
	if _, err := om.At(4); !errors.Is(err, orderedmap.ErrOutOfRange) {
		t.Errorf("unexpected error: got %v, want %v", err, orderedmap.ErrOutOfRange)
	}

	key, err := om.ReplaceAt(2, 99)
	if err != nil {
		t.Fatal(err)
	}
	if key != "x" {
		t.Errorf("unexpected key: got %q, want %q", key, "x")
	}
	if diff := cmp.Diff([]int{1, 99}, om.GetAll("x")); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}

	if got := om.KeyAt(3); got != "y" {
		t.Errorf("unexpected key at 3: got %q, want %q", got, "y")
	}
	if got := om.KeyAt(9); got != "" {
		t.Errorf("out-of-range key must be zero: got %q", got)
	}
}

func TestOrderedMultiMapRemove(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("x", 2)

	if diff := cmp.Diff([]string{"x", "x"}, om.Keys()); diff != "" {
		t.Errorf("unexpected keys (-want +got):\n%s", diff)
	}
	if got := om.Remove("x"); got != 2 {
		t.Errorf("unexpected removed count: got %d, want 2", got)
	}
	if !om.IsEmpty() {
		t.Error("container must be empty after removing the only key")
	}
	if got := om.Remove("x"); got != 0 {
		t.Errorf("absent key must report 0: got %d", got)
	}
}

func TestOrderedMultiMapRemoveAt(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)

	key, err := om.RemoveAt(0)
	if err != nil {
		t.Fatal(err)
	}
	if key != "x" {
		t.Errorf("unexpected key: got %q, want %q", key, "x")
	}
	if diff := cmp.Diff([]string{"y", "x"}, om.Keys()); diff != "" {
		t.Errorf("unexpected keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2}, om.GetAll("x")); diff != "" {
		t.Errorf("only the addressed slot must go (-want +got):\n%s", diff)
	}
	if !om.Contains("x") {
		t.Error("a key with remaining slots must stay contained")
	}

	if _, err := om.RemoveAt(5); !errors.Is(err, orderedmap.ErrOutOfRange) {
		t.Errorf("unexpected error: got %v, want %v", err, orderedmap.ErrOutOfRange)
	}
}

func TestOrderedMultiMapRemoveLast(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("x", 2)

	key, err := om.RemoveLast()
	if err != nil {
		t.Fatal(err)
	}
	if key != "x" {
		t.Errorf("unexpected key: got %q, want %q", key, "x")
	}
	if diff := cmp.Diff([]int{1}, om.GetAll("x")); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}

	if _, err := om.RemoveLast(); err != nil {
		t.Fatal(err)
	}
	if _, err := om.RemoveLast(); !errors.Is(err, orderedmap.ErrEmptyContainer) {
		t.Errorf("unexpected error: got %v, want %v", err, orderedmap.ErrEmptyContainer)
	}
}

func TestOrderedMultiMapLastAndGet(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	if got := om.Last(); got != 0 {
		t.Errorf("empty container must yield the zero value: got %d", got)
	}

	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)

	if got := om.Last(); got != 2 {
		t.Errorf("unexpected last value: got %d, want 2", got)
	}
	if got, ok := om.Get("x"); !ok || got != 2 {
		t.Errorf("Get must read the last slot: got (%d, %v), want (2, true)", got, ok)
	}
	if got, ok := om.Get("z"); ok || got != 0 {
		t.Errorf("unexpected result: got (%d, %v), want (0, false)", got, ok)
	}
	if got := om.ValueOr("z", 42); got != 42 {
		t.Errorf("unexpected fallback: got %d, want 42", got)
	}
	if got := om.GetAll("z"); got != nil {
		t.Errorf("absent key must yield nil: got %v", got)
	}
}

func TestOrderedMultiMapUniqueKeys(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)
	om.Add("z", 100)
	om.Add("y", 20)

	if diff := cmp.Diff([]string{"x", "y", "z"}, om.UniqueKeys()); diff != "" {
		t.Errorf("unexpected unique keys (-want +got):\n%s", diff)
	}
	if got := om.IndexOf("y"); got != 1 {
		t.Errorf("IndexOf must report the first occurrence: got %d, want 1", got)
	}
	if got := om.IndexOf("w"); got != -1 {
		t.Errorf("absent key must report -1: got %d", got)
	}
}

func TestOrderedMultiMapViews(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)

	if diff := cmp.Diff([]int{1, 10, 2}, om.Values()); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}

	wantEntries := []orderedmap.Entry[string, int]{
		{Key: "x", Value: 1},
		{Key: "y", Value: 10},
		{Key: "x", Value: 2},
	}
	if diff := cmp.Diff(wantEntries, om.Entries()); diff != "" {
		t.Errorf("unexpected entries (-want +got):\n%s", diff)
	}

	wantPairs := []orderedmap.ValueKey[int, string]{
		{},
		{Value: 1, Key: "x"},
		{Value: 10, Key: "y"},
		{Value: 2, Key: "x"},
	}
	if diff := cmp.Diff(wantPairs, om.ValueKeyList(true, true)); diff != "" {
		t.Errorf("unexpected pairs (-want +got):\n%s", diff)
	}

	var gotKeys []string
	var gotValues []int
	for key, value := range om.All() {
		gotKeys = append(gotKeys, key)
		gotValues = append(gotValues, value)
	}
	if diff := cmp.Diff([]string{"x", "y", "x"}, gotKeys); diff != "" {
		t.Errorf("unexpected iterated keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 10, 2}, gotValues); diff != "" {
		t.Errorf("unexpected iterated values (-want +got):\n%s", diff)
	}
}

func TestOrderedMultiMapClear(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("x", 2)
	om.Clear()

	if !om.IsEmpty() {
		t.Error("container must be empty after Clear")
	}
	om.Add("y", 10)
	if diff := cmp.Diff([]string{"y"}, om.Keys()); diff != "" {
		t.Errorf("container must be usable after Clear (-want +got):\n%s", diff)
	}
}

func TestOrderedMultiMapClone(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)

	cloned := om.Clone()
	cloned.Add("x", 2)

	if diff := cmp.Diff([]int{1}, om.GetAll("x")); diff != "" {
		t.Errorf("the original must be unaffected (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, cloned.GetAll("x")); diff != "" {
		t.Errorf("unexpected cloned values (-want +got):\n%s", diff)
	}
}

func TestOrderedMultiMapToMap(t *testing.T) {
	t.Parallel()

	om := orderedmap.NewOrderedMultiMap[string, int]()
	om.Add("x", 1)
	om.Add("y", 10)
	om.Add("x", 2)

	if diff := cmp.Diff(map[string][]int{"x": {1, 2}, "y": {10}}, om.ToMap()); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestOrderedMultiMapFromEntries(t *testing.T) {
	t.Parallel()

	om := orderedmap.OrderedMultiMapFromEntries(
		orderedmap.Entry[string, int]{Key: "x", Value: 1},
		orderedmap.Entry[string, int]{Key: "y", Value: 10},
		orderedmap.Entry[string, int]{Key: "x", Value: 2},
	)

	if diff := cmp.Diff([]string{"x", "y", "x"}, om.Keys()); diff != "" {
		t.Errorf("unexpected keys (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, om.GetAll("x")); diff != "" {
		t.Errorf("unexpected values (-want +got):\n%s", diff)
	}
}

func TestOrderedMultiMapZeroValue(t *testing.T) {
	t.Parallel()

	var om orderedmap.OrderedMultiMap[string, int]
	if !om.IsEmpty() {
		t.Error("zero value must be empty")
	}
	if got := om.Last(); got != 0 {
		t.Errorf("reading the zero value must degrade to zero: got %d", got)
	}

	om.Add("x", 1)
	if got, ok := om.Get("x"); !ok || got != 1 {
		t.Errorf("zero value must be usable: got (%d, %v), want (1, true)", got, ok)
	}
}
