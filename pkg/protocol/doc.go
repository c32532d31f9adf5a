// Package protocol defines the ETP 1.2 message envelope.
//
// Every ETP message travels as one binary WebSocket frame:
//
//	┌──────────────────────────┬──────────────────────────────────────┐
//	│ MessageHeader (Avro)     │ Body (Avro, optionally gzip)         │
//	└──────────────────────────┴──────────────────────────────────────┘
//
// The header is never compressed. It holds five fields in this order:
// protocol, messageType, correlationId, messageId, messageFlags.
//
// # Message Keys
//
// A (protocol, messageType) pair is a Key. It selects the Avro schema of the
// body and the display name of the message, and it drives the built-in
// handling of Ping, Acknowledge and ProtocolException:
//
//	protocol.CoreOpenSession      // Key{0, 2}
//	protocol.StoreGetDataObjects  // Key{4, 1}
//
// # Header Flags
//
//	0x02 Final      last part of a multi-part response
//	0x08 Compress   body is gzip compressed
//	0x10 ReqAck     sender requests an Acknowledge
//	0x20 Extension  a MessageHeaderExtension follows the header
//
// Other bits are reserved and ignored when parsing.
package protocol
