//go:build descent_noassert

package parse

const loopAssertions = false
