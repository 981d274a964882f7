// Package goid extracts the id of the calling goroutine.
//
// The id is taken from the header line of runtime.Stack output, which has the
// form "goroutine 123 [running]:". Ids are positive and never reused while the
// goroutine is alive, which makes them suitable as thread identities for lock
// ownership.
package goid

import "runtime"

const prefix = "goroutine "

// Get returns the id of the calling goroutine, or 0 if it cannot be parsed.
func Get() uint64 {
	// Only the first line is needed.
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	return Parse(buf[:n])
}

// Parse extracts the goroutine id from the header of a stack trace.
func Parse(buf []byte) uint64 {
	if len(buf) < len(prefix) || string(buf[:len(prefix)]) != prefix {
		return 0
	}
	var id uint64
	for _, c := range buf[len(prefix):] {
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
