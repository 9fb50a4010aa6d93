//go:build !release

package assert

// FullEnabled reports whether Full assertions are checked in this build.
const FullEnabled = true
