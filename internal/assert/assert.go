// Package assert provides internal consistency checks that are compiled out
// of release builds. Guard every check with the Enabled constant so the
// condition itself costs nothing when the "assertions" build tag is absent:
//
//	if assert.Enabled && len(pix)%width != 0 {
//		assert.Failf("plane of %d bytes not divisible by width %d", len(pix), width)
//	}
package assert

import (
	"fmt"
	"runtime/debug"
)

// Failf panics with the formatted message and the current goroutine stack.
func Failf(format string, args ...any) {
	panic(fmt.Sprintf("assertion failed: "+format+"\n", args...) + string(debug.Stack()))
}
