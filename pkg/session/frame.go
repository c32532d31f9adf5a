package session

import (
	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
)

// Frame is one decoded websocket payload.
type Frame struct {
	Header    protocol.MessageHeader
	Extension *messages.MessageHeaderExtension

	// Body is the goavro native body.
	Body any
}

// EncodeFrame builds the payload [header][extension][body]. The body is
// gzip compressed when the header's compress flag is set, and ext is
// written only when the extension flag is set.
func EncodeFrame(reg *schema.Registry, hdr protocol.MessageHeader, body any, ext *messages.MessageHeaderExtension) ([]byte, error) {
	if m, ok := body.(messages.Message); ok {
		body = m.Native()
	}
	payload, err := reg.SerializeBody(hdr.Key(), body)
	if err != nil {
		return nil, err
	}

	flags := hdr.Flags()
	if flags.Compress {
		payload, err = protocol.Compress(payload)
		if err != nil {
			return nil, etperr.New("E201").WithDetail(hdr.Key().String()).Wrap(err)
		}
	}

	frame, err := reg.SerializeHeader(hdr)
	if err != nil {
		return nil, err
	}
	if flags.Extension {
		if ext == nil {
			ext = &messages.MessageHeaderExtension{}
		}
		extBytes, err := reg.SerializeType(schema.TypeMessageHeaderExtension, ext.Native())
		if err != nil {
			return nil, err
		}
		frame = append(frame, extBytes...)
	}
	return append(frame, payload...), nil
}

// DecodeFrame decodes a complete payload.
func DecodeFrame(reg *schema.Registry, data []byte) (*Frame, error) {
	hdr, rest, err := reg.DeserializeHeader(data)
	if err != nil {
		return nil, err
	}
	ext, body, err := decodePayload(reg, hdr, rest)
	if err != nil {
		return nil, err
	}
	return &Frame{Header: hdr, Extension: ext, Body: body}, nil
}

// decodePayload decodes what follows the header: the optional extension
// and the body, gunzipped when flagged.
func decodePayload(reg *schema.Registry, hdr protocol.MessageHeader, rest []byte) (*messages.MessageHeaderExtension, any, error) {
	flags := hdr.Flags()

	var ext *messages.MessageHeaderExtension
	if flags.Extension {
		native, after, err := reg.DeserializeType(schema.TypeMessageHeaderExtension, rest)
		if err != nil {
			return nil, nil, err
		}
		if ext, err = messages.MessageHeaderExtensionFromNative(native); err != nil {
			return nil, nil, err
		}
		rest = after
	}

	// A header-only message such as Acknowledge may carry the compress flag
	// with nothing to inflate.
	if flags.Compress && len(rest) > 0 {
		plain, err := protocol.Decompress(rest)
		if err != nil {
			return nil, nil, etperr.New("E201").WithDetail(hdr.Key().String()).Wrap(err)
		}
		rest = plain
	}

	body, _, err := reg.DeserializeBody(hdr.Key(), rest)
	if err != nil {
		return nil, nil, err
	}
	return ext, body, nil
}
