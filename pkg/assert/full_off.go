//go:build release

package assert

const FullEnabled = false
