package serial

import (
	"encoding/base64"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// maxDecodedSize bounds the memory a single compressed stroke may expand
// to.
const maxDecodedSize = 64 << 20

// Encoder and decoder are safe for concurrent EncodeAll and DecodeAll
// calls. Construction only fails on invalid options.
var (
	encoder, _ = zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderConcurrency(1),
	)
	decoder, _ = zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(0),
		zstd.WithDecoderMaxMemory(maxDecodedSize),
	)
)

// Compress returns the zstd compression of s in standard base64, which
// stays valid inside a JSON string without escaping beyond '/' and '+'.
func Compress(s string) string {
	return base64.StdEncoding.EncodeToString(encoder.EncodeAll([]byte(s), nil))
}

// Decompress reverses Compress.
func Decompress(s string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %w", ErrCorrupt, err)
	}
	out, err := decoder.DecodeAll(raw, nil)
	if err != nil {
		return "", fmt.Errorf("%w: zstd: %w", ErrCorrupt, err)
	}
	return string(out), nil
}
