package cache

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/zstd"

	"github.com/Undanomi/OSINT-GAME-sub000/internal/shared/types"
)

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

var (
	codecOnce sync.Once
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	codecErr  error
)

func zstdCodec() (*zstd.Encoder, *zstd.Decoder, error) {
	codecOnce.Do(func() {
		encoder, codecErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if codecErr != nil {
			return
		}
		decoder, codecErr = zstd.NewReader(nil)
	})
	return encoder, decoder, codecErr
}

// encodeRecords serializes records as zstd-compressed JSON
func encodeRecords(records []types.ContentRecord) ([]byte, error) {
	data, err := sonic.Marshal(records)
	if err != nil {
		return nil, err
	}
	enc, _, err := zstdCodec()
	if err != nil {
		return nil, err
	}
	return enc.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

// decodeRecords accepts compressed and plain JSON blobs
func decodeRecords(blob []byte) ([]types.ContentRecord, error) {
	data := blob
	if bytes.HasPrefix(blob, zstdMagic) {
		_, dec, err := zstdCodec()
		if err != nil {
			return nil, err
		}
		data, err = dec.DecodeAll(blob, nil)
		if err != nil {
			return nil, fmt.Errorf("decompress: %w", err)
		}
	}

	var records []types.ContentRecord
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
