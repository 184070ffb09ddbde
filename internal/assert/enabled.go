//go:build assertions

package assert

// Enabled reports whether consistency checks run in this build.
const Enabled = true
