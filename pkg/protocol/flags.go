package protocol

// Header flag bits.
const (
	FlagFinal     int32 = 0x02 // Final part of a multi-part response
	FlagCompress  int32 = 0x08 // Body is compressed
	FlagReqAck    int32 = 0x10 // Request acknowledgement of this message
	FlagExtension int32 = 0x20 // Extension between header and body
)

// MessageHeaderFlags is the logical view of MessageHeader.MessageFlags.
type MessageHeaderFlags struct {
	Final     bool
	Compress  bool
	ReqAck    bool
	Extension bool
}

// DefaultFlags returns the flags for a single-part outgoing message.
func DefaultFlags() MessageHeaderFlags {
	return MessageHeaderFlags{
		Final:    true,
		Compress: true,
	}
}

// NotFinalFlags returns the flags for a non-final part of a multi-part message.
func NotFinalFlags() MessageHeaderFlags {
	return MessageHeaderFlags{
		Final:    false,
		Compress: true,
	}
}

// ParseFlags decodes a flag word. Unknown bits are dropped.
func ParseFlags(bits int32) MessageHeaderFlags {
	return MessageHeaderFlags{
		Final:     bits&FlagFinal != 0,
		Compress:  bits&FlagCompress != 0,
		ReqAck:    bits&FlagReqAck != 0,
		Extension: bits&FlagExtension != 0,
	}
}

// Int32 encodes the flags as a flag word.
func (f MessageHeaderFlags) Int32() int32 {
	var v int32
	if f.Final {
		v |= FlagFinal
	}
	if f.Compress {
		v |= FlagCompress
	}
	if f.ReqAck {
		v |= FlagReqAck
	}
	if f.Extension {
		v |= FlagExtension
	}
	return v
}
