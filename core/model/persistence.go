package model

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/YuminosukeSato/pointml/pkg/errors"
)

// 保存形式:
//
//	magic "PML1" | codec (1 byte) | rawLen (uint64) | payloadLen (uint64) | xxhash64(payload) (uint64) | payload
//
// payload は gob でエンコードした ModelWeights を codec で圧縮したもの。
var magic = [4]byte{'P', 'M', 'L', '1'}

const headerSize = 4 + 1 + 8 + 8 + 8

// maxPayload は壊れたヘッダによる巨大な割り当てを防ぐ上限
const maxPayload = 64 << 20

// SaveModel はモデルの重みをファイルに保存する
//
// 使用例:
//
//	weights, err := reg.Weights()
//	// ...
//	err = model.SaveModel(weights, "model.pml", model.CodecZstd)
func SaveModel(weights *ModelWeights, filename string, codec Codec) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "failed to create file %s", filename)
	}

	if err := SaveModelToWriter(weights, file, codec); err != nil {
		file.Close()
		return err
	}
	return errors.Wrap(file.Close(), "failed to close model file")
}

// LoadModel はファイルからモデルの重みを読み込む
func LoadModel(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file %s", filename)
	}
	defer file.Close()

	return LoadModelFromReader(file)
}

// SaveModelToWriter はモデルの重みをio.Writerに保存する
func SaveModelToWriter(weights *ModelWeights, w io.Writer, codec Codec) error {
	if err := weights.Validate(); err != nil {
		return err
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(weights); err != nil {
		return errors.Wrap(err, "failed to encode model")
	}

	payload, err := codec.compress(raw.Bytes())
	if err != nil {
		return err
	}

	header := make([]byte, headerSize)
	copy(header, magic[:])
	header[4] = byte(codec)
	binary.LittleEndian.PutUint64(header[5:], uint64(raw.Len()))
	binary.LittleEndian.PutUint64(header[13:], uint64(len(payload)))
	binary.LittleEndian.PutUint64(header[21:], xxhash.Sum64(payload))

	if _, err := w.Write(header); err != nil {
		return errors.Wrap(err, "failed to write model header")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "failed to write model payload")
	}
	return nil
}

// LoadModelFromReader はio.Readerからモデルの重みを読み込み、チェックサムを検証する
func LoadModelFromReader(r io.Reader) (*ModelWeights, error) {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, errors.Wrap(err, "failed to read model header")
	}
	if !bytes.Equal(header[:4], magic[:]) {
		return nil, errors.NewValueError("LoadModel", "not a pointml model file")
	}

	codec := Codec(header[4])
	rawLen := binary.LittleEndian.Uint64(header[5:])
	payloadLen := binary.LittleEndian.Uint64(header[13:])
	checksum := binary.LittleEndian.Uint64(header[21:])
	if rawLen > maxPayload || payloadLen > maxPayload {
		return nil, errors.NewValueError("LoadModel", "model payload exceeds size limit")
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "failed to read model payload")
	}
	if xxhash.Sum64(payload) != checksum {
		return nil, errors.NewModelError("LoadModel", "corrupted payload", errors.ErrChecksumMismatch)
	}

	raw, err := codec.decompress(payload, int(rawLen))
	if err != nil {
		return nil, err
	}

	var weights ModelWeights
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&weights); err != nil {
		return nil, errors.Wrap(err, "failed to decode model")
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &weights, nil
}
