package smtlib

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Suffix of zstd-compressed scripts.
const zstdSuffix = ".zst"

var (
	decoder *zstd.Decoder
	encoder *zstd.Encoder
)

func init() {
	var err error
	decoder, err = zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		panic(err)
	}
	encoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression), zstd.WithEncoderConcurrency(1))
	if err != nil {
		panic(err)
	}
}

// Load parses the script at path. Files ending in .zst are decompressed
// first.
func Load(path string) (*Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("smtlib: %w", err)
	}
	if strings.HasSuffix(path, zstdSuffix) {
		data, err = decoder.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("smtlib: %s: %w", path, err)
		}
	}
	p, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Save writes p to path as a script, compressed when path ends in .zst.
func Save(path string, p *Problem) error {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return err
	}
	data := buf.Bytes()
	if strings.HasSuffix(path, zstdSuffix) {
		data = encoder.EncodeAll(data, nil)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("smtlib: %w", err)
	}
	return nil
}
