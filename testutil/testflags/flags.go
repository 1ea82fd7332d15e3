package testflags

import (
	"os"
	"testing"
)

// LargeGridTest skips t unless NASTCONV_ENABLE_LARGE_TESTS is set. Large
// grid tests allocate hundreds of megabytes.
func LargeGridTest(t *testing.T) {
	_, ok := os.LookupEnv("NASTCONV_ENABLE_LARGE_TESTS")
	if !ok {
		t.SkipNow()
	}
	t.Parallel()
}
