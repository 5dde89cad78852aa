// Package types provides shared data structures for the shell.
//
// Core Types:
//   - Service: Provider definition listing the request tags it answers
//   - Tool: One request tag with its parameters and result shape
//   - Parameter: A named, typed request parameter
package types
