//go:build !debug

package assert

const failFast = false
