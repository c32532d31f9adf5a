package protocol

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
)

// MaxMessageSize bounds an inflated message body. It matches the
// MaxWebSocketMessagePayloadSize a client advertises.
const MaxMessageSize = 16 * 1024 * 1024

// Compress gzips a serialized message body.
func Compress(body []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(body); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress. The inflated body may not exceed
// MaxMessageSize.
func Decompress(body []byte) ([]byte, error) {
	return DecompressLimit(body, MaxMessageSize)
}

// DecompressLimit reverses Compress, failing once more than limit bytes
// have been inflated.
func DecompressLimit(body []byte, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, fmt.Errorf("inflated body exceeds %d bytes", limit)
	}
	return out, nil
}
