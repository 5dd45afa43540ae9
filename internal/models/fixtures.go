package models

import (
	"path/filepath"
	"runtime"
	"testing"
)

// GetFixturePath returns the absolute path of a file in the repository's
// testdata directory. It lives here, outside a _test.go file, so test code
// in any package can share it.
func GetFixturePath(t *testing.T, fileName string) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to resolve the fixtures directory")
	}
	return filepath.Join(filepath.Dir(currentFile), "..", "..", "testdata", fileName)
}
