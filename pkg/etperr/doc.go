// Package etperr provides the coded error taxonomy returned by the ETP client.
//
// Every failure the client can surface belongs to one category:
//   - schema: unknown message keys, Avro encode and decode failures
//   - transport: websocket read/write failures and gzip body failures
//   - protocol: exceptions sent by the peer and unsupported messages
//   - config: URL, credential and configuration file problems
//
// # Error Codes
//
// Each error has a code (e.g. "E100") registered with a category and a short
// message:
//
//	err := etperr.New("E100").WithDetail("no schema for (99, 1)")
//	fmt.Println(err.FormatCompact())
//	// E100: No schema registered for message (no schema for (99, 1))
//
// Errors built from a code match each other with errors.Is, so callers can
// test for a kind without holding the sentinel:
//
//	if errors.Is(err, etperr.ErrNoSchema) { ... }
//
// A *ProtocolException carries the code, message and per-item map sent by
// the peer in a Core.ProtocolException message:
//
//	var pe *etperr.ProtocolException
//	if errors.As(err, &pe) { ... }
package etperr
