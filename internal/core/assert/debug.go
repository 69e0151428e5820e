//go:build debug

package assert

const failFast = true
