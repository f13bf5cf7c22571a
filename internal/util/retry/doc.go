// Package retry provides bounded retry logic for operations against the
// Google Cloud APIs.
//
// The [Do] function retries an operation with configurable max attempts,
// delay, and backoff multiplier. A multiplier of 1.0 yields a fixed-interval
// poll, which is how the onboarder waits for a newly created project to
// become visible to list calls. Errors wrapped with [Fatal] stop the loop
// immediately.
package retry
