package store

import (
	"reflect"

	"github.com/coolguazitech/network-dashboard-sub002/pkg/ifname"
)

// canonicalizeInterfaceNames implements spec.md §4.1 step 1: normalise
// every item's interface_name to its canonical short form before hashing.
// Mirrors original_source/app/repositories/typed_records.py::save_batch's
// dynamic `if "interface_name" in data` check — Go has no dict-of-fields
// to probe, so reflection walks each item for an exported InterfaceName
// string field and rewrites it in place on a copy.
func canonicalizeInterfaceNames[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = canonicalizeItem(item)
	}
	return out
}

func canonicalizeItem[T any](item T) T {
	v := reflect.ValueOf(&item).Elem()
	if v.Kind() != reflect.Struct {
		return item
	}
	field := v.FieldByName("InterfaceName")
	if field.IsValid() && field.Kind() == reflect.String && field.CanSet() {
		field.SetString(ifname.Canonicalize(field.String()))
	}
	return item
}
