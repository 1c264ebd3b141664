package compression

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/pierrec/lz4"
)

// ErrCorrupt is returned when compressed data cannot be decoded.
var ErrCorrupt = errors.New("corrupt compressed data")

// Frame tags
const (
	frameRaw byte = 0x00
	frameLZ4 byte = 0x01
)

// NoCompressor implements a pass-through compressor that doesn't compress data.
type NoCompressor struct{}

func (c *NoCompressor) Name() string {
	return "none"
}

func (c *NoCompressor) Compress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (c *NoCompressor) Decompress(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

// LZ4Compressor implements LZ4 block compression. Each output starts with a
// frame tag and the uvarint uncompressed length so that decompression can
// size its buffer exactly. Incompressible input is stored raw.
type LZ4Compressor struct{}

func (c *LZ4Compressor) Name() string {
	return "lz4"
}

func (c *LZ4Compressor) Compress(data []byte) ([]byte, error) {
	header := make([]byte, 1+binary.MaxVarintLen64)
	n := binary.PutUvarint(header[1:], uint64(len(data)))
	header = header[:1+n]
	if len(data) == 0 {
		header[0] = frameRaw
		return header, nil
	}

	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	size, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	// CompressBlock reports 0 for incompressible input
	if size == 0 || size >= len(data) {
		header[0] = frameRaw
		return append(header, data...), nil
	}
	header[0] = frameLZ4
	return append(header, compressed[:size]...), nil
}

func (c *LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < 2 {
		return nil, ErrCorrupt
	}
	length, n := binary.Uvarint(data[1:])
	if n <= 0 {
		return nil, ErrCorrupt
	}
	body := data[1+n:]

	switch data[0] {
	case frameRaw:
		if uint64(len(body)) != length {
			return nil, ErrCorrupt
		}
		return append([]byte(nil), body...), nil
	case frameLZ4:
		out := make([]byte, length)
		written, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(written) != length {
			return nil, ErrCorrupt
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: frame tag %#x", ErrCorrupt, data[0])
	}
}
