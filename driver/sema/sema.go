// Package sema provides a counting semaphore whose Acquire blocks the calling
// OS thread until the count is positive.
package sema

import "errors"

var errClosed = errors.New("sema: use of closed semaphore")
