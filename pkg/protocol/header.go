package protocol

import "fmt"

// Reserved message types shared by every protocol.
const (
	MessageTypeProtocolException int32 = 1000
	MessageTypeAcknowledge       int32 = 1001
)

// Key identifies a message shape by (protocol, messageType).
type Key struct {
	Protocol    int32
	MessageType int32
}

// String returns the key as "(protocol, messageType)".
func (k Key) String() string {
	return fmt.Sprintf("(%d, %d)", k.Protocol, k.MessageType)
}

// IsProtocolException reports whether the key is a ProtocolException in any protocol.
func (k Key) IsProtocolException() bool {
	return k.MessageType == MessageTypeProtocolException
}

// IsAcknowledge reports whether the key is an Acknowledge in any protocol.
func (k Key) IsAcknowledge() bool {
	return k.MessageType == MessageTypeAcknowledge
}

// NeverCompressed reports whether bodies for this key must always be sent
// uncompressed: Core messages, ProtocolException and Acknowledge.
//
// The message type test is not protocol qualified, so any protocol reusing
// 1000 or 1001 is also sent uncompressed.
func (k Key) NeverCompressed() bool {
	return k.Protocol == int32(ProtocolCore) ||
		k.MessageType == MessageTypeProtocolException ||
		k.MessageType == MessageTypeAcknowledge
}

// MessageHeader precedes every message body.
type MessageHeader struct {
	Protocol      int32 `json:"protocol"`
	MessageType   int32 `json:"messageType"`
	CorrelationID int64 `json:"correlationId"`
	MessageID     int64 `json:"messageId"`
	MessageFlags  int32 `json:"messageFlags"`
}

// NewHeader builds a header for key with the given ids and flags.
func NewHeader(key Key, messageID, correlationID int64, flags MessageHeaderFlags) MessageHeader {
	return MessageHeader{
		Protocol:      key.Protocol,
		MessageType:   key.MessageType,
		CorrelationID: correlationID,
		MessageID:     messageID,
		MessageFlags:  flags.Int32(),
	}
}

// Key returns the (protocol, messageType) pair of the header.
func (h MessageHeader) Key() Key {
	return Key{Protocol: h.Protocol, MessageType: h.MessageType}
}

// Flags returns the parsed flag set.
func (h MessageHeader) Flags() MessageHeaderFlags {
	return ParseFlags(h.MessageFlags)
}
