package model

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// Codec identifies the compression applied to a persisted model payload.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecZstd
	CodecS2
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecS2:
		return "s2"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Codec(%d)", uint8(c))
	}
}

// ParseCodec maps a codec name to its Codec.
func ParseCodec(name string) (Codec, error) {
	switch name {
	case "none", "":
		return CodecNone, nil
	case "zstd":
		return CodecZstd, nil
	case "s2":
		return CodecS2, nil
	case "lz4":
		return CodecLZ4, nil
	default:
		return CodecNone, errors.NewValidationError("codec", "must be one of none, zstd, s2, lz4", name)
	}
}

// zstd encoders and decoders are built for reuse; EncodeAll/DecodeAll are stateless.
var zstdEncoderPool = sync.Pool{
	New: func() any {
		encoder, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedDefault),
			zstd.WithEncoderCRC(false),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd encoder for pool: %v", err))
		}
		return encoder
	},
}

var zstdDecoderPool = sync.Pool{
	New: func() any {
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("failed to create zstd decoder for pool: %v", err))
		}
		return decoder
	},
}

func (c Codec) compress(data []byte) ([]byte, error) {
	switch c {
	case CodecNone:
		return data, nil
	case CodecZstd:
		encoder := zstdEncoderPool.Get().(*zstd.Encoder)
		defer zstdEncoderPool.Put(encoder)
		return encoder.EncodeAll(data, nil), nil
	case CodecS2:
		return s2.Encode(nil, data), nil
	case CodecLZ4:
		if len(data) == 0 {
			return nil, nil
		}
		dst := make([]byte, lz4.CompressBlockBound(len(data)))
		var lc lz4.Compressor
		n, err := lc.CompressBlock(data, dst)
		if err != nil {
			return nil, errors.Wrap(err, "lz4 compression failed")
		}
		if n == 0 {
			// incompressible input; lz4 signals this with a zero length
			return nil, errors.New("lz4 compression failed: incompressible payload")
		}
		return dst[:n], nil
	default:
		return nil, errors.NewValidationError("codec", "unsupported codec", c.String())
	}
}

func (c Codec) decompress(data []byte, rawLen int) ([]byte, error) {
	switch c {
	case CodecNone:
		return data, nil
	case CodecZstd:
		decoder := zstdDecoderPool.Get().(*zstd.Decoder)
		defer zstdDecoderPool.Put(decoder)
		out, err := decoder.DecodeAll(data, make([]byte, 0, rawLen))
		if err != nil {
			return nil, errors.Wrap(err, "zstd decompression failed")
		}
		return out, nil
	case CodecS2:
		out, err := s2.Decode(nil, data)
		if err != nil {
			return nil, errors.Wrap(err, "s2 decompression failed")
		}
		return out, nil
	case CodecLZ4:
		if rawLen == 0 {
			return nil, nil
		}
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, errors.Wrap(err, "lz4 decompression failed")
		}
		return out[:n], nil
	default:
		return nil, errors.NewValidationError("codec", "unsupported codec", c.String())
	}
}
