// Package tthread provides portable threading primitives modeled on the C++11
// thread support library: plain, recursive and spinning mutexes, scoped lock
// guards, condition variables, atomic flags and integers, and OS threads with
// join and detach lifecycle.
//
// The lock and condition implementations come from the native backend family
// selected at build time (see NativeBackend) and the atomic operations from
// the atomic strategy selected at build time (see AtomicStrategy).
//
// Contract violations, such as unlocking a mutex that is not held or joining
// a thread that is not joinable, are not reported as errors. They are logged
// through the library logger and terminate the process.
package tthread
