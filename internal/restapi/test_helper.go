// test_helper.go contains shared utilities for extracting
// IDs from JSON response structures in integration tests.
package restapi

type testingFatalf interface {
	Fatalf(format string, args ...any)
}

// collectAllNestedWardNosFromObjects extracts numeric ward IDs from a nested
// array field across all objects in the list. For example, extracting all
// wardIds from a list of route objects where each route has a wardIds array.
func collectAllNestedWardNosFromObjects(t testingFatalf, list []interface{}, key string) (ids []int) {
	for i, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("item %d is not a map[string]interface{}", i)
		}
		value, ok := object[key]
		if !ok {
			t.Fatalf("item %d missing key %q", i, key)
		}
		objectList, ok := value.([]interface{})
		if !ok {
			t.Fatalf("item %d key %q is not a []interface{}: %T", i, key, value)
		}
		for j, nestedItem := range objectList {
			id, ok := nestedItem.(float64)
			if !ok {
				t.Fatalf("item %d key %q index %d is not a number: %T", i, key, j, nestedItem)
			}
			ids = append(ids, int(id))
		}
	}
	return ids
}

// collectAllWardNosFromObjects extracts numeric ward IDs from all objects in
// this list. For example, extracting all wardNo values from a list of ward
// reference objects. JSON numbers decode as float64, so values are narrowed
// to int here.
func collectAllWardNosFromObjects(t testingFatalf, list []interface{}, key string) (ids []int) {
	for i, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("item %d is not a map[string]interface{}", i)
		}
		value, ok := object[key]
		if !ok {
			t.Fatalf("item %d missing key %q", i, key)
		}
		id, ok := value.(float64)
		if !ok {
			t.Fatalf("item %d key %q is not a number: %T", i, key, value)
		}
		ids = append(ids, int(id))
	}
	return ids
}

// collectAllIdsFromObjects extracts string IDs from all objects in this
// list. For example, extracting all route numbers from a list of route
// objects.
func collectAllIdsFromObjects(t testingFatalf, list []interface{}, key string) (ids []string) {
	for i, item := range list {
		object, ok := item.(map[string]interface{})
		if !ok {
			t.Fatalf("item %d is not a map[string]interface{}", i)
		}
		value, ok := object[key]
		if !ok {
			t.Fatalf("item %d missing key %q", i, key)
		}
		id, ok := value.(string)
		if !ok {
			t.Fatalf("item %d key %q is not a string: %T", i, key, value)
		}
		ids = append(ids, id)
	}
	return ids
}
