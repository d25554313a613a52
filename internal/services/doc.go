// Package services defines the [ListSource] interface for loading lists and implements it over HTTP and local files.
//
// # Sources
//
//   - [HTTPListSource] : GET against the lists endpoint
//   - [FileListSource] : the same payload read from disk, for offline use and fixtures
//
// Both decode the payload with [DecodePayload] and partition it with [models.Partition].
//
// # Wrappers
//
// [Delayed] waits before delegating (the artificial loading delay) and [Throttled] bounds how often a source
// may be hit, so repeated "try again" presses cannot hammer the endpoint. Both honor context cancellation.
//
// # Error Handling
//
// Sources use typed errors from the shared package:
//   - [shared.ErrAPIRequest] : transport failure or non-2xx status
//   - [shared.ErrMalformedPayload] : body is not a valid lists payload
//   - [shared.ErrTimeout] : context ended while waiting to load
//
// Callers are expected to treat any error as a failed load.
package services
