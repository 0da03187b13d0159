package components

import "strings"

const maxCachedPad = 120

var padCache = func() [maxCachedPad + 1]string {
	var c [maxCachedPad + 1]string
	for i := range c {
		c[i] = strings.Repeat(" ", i)
	}
	return c
}()

// Pad returns a string of n spaces.
func Pad(n int) string {
	if n <= 0 {
		return ""
	}
	if n <= maxCachedPad {
		return padCache[n]
	}
	return strings.Repeat(" ", n)
}
