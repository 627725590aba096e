package orderedmap_test

import (
	"encoding/json"
	"fmt"
	"os"

	orderedmap "github.com/karupanerura/ordered-map"
)

func ExampleOrderedMap() {
	// Build an environment in the order the variables should be exported
	env := orderedmap.NewOrderedMap[string, string]()
	env.Set("APP_ENV", "production")
	env.Set("APP_PORT", "8080")
	env.Set("APP_DEBUG", "false")

	// Overwriting a variable keeps its original position
	env.Set("APP_PORT", "9090")

	for name, value := range env.All() {
		fmt.Printf("%s=%s\n", name, value)
	}

	// A missing variable reads as the zero value
	fmt.Printf("APP_SECRET=%q\n", env.Value("APP_SECRET"))

	// Output:
	// APP_ENV=production
	// APP_PORT=9090
	// APP_DEBUG=false
	// APP_SECRET=""
}

func ExampleOrderedMap_ValueKeyList() {
	// Build the choices of a selection widget in display order
	sizes := orderedmap.NewOrderedMap[string, string]()
	sizes.Set("S", "Small")
	sizes.Set("M", "Medium")
	sizes.Set("L", "Large")

	// Lead with an empty choice so the widget starts unselected
	for _, pair := range sizes.ValueKeyList(true, true) {
		fmt.Printf("key=%q label=%q\n", pair.Key, pair.Value)
	}

	// Output:
	// key="" label=""
	// key="S" label="Small"
	// key="M" label="Medium"
	// key="L" label="Large"
}

func ExampleOrderedMap_MarshalJSON() {
	// JSON objects built from the map keep member order
	profile := orderedmap.NewOrderedMap[string, any]()
	profile.Set("name", "Alice")
	profile.Set("age", 30)
	profile.Set("admin", true)

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(profile); err != nil {
		fmt.Println("Error:", err)
		return
	}

	// Output:
	// {"name":"Alice","age":30,"admin":true}
}

func ExampleOrderedMap_With() {
	// Chain entries when building a fixed display list
	weekdays := orderedmap.NewOrderedMap[string, string]().
		With("mon", "Monday").
		With("tue", "Tuesday").
		With("wed", "Wednesday")

	fmt.Println(weekdays.Keys())
	fmt.Println(weekdays.Value("tue"))

	// Output:
	// [mon tue wed]
	// Tuesday
}
