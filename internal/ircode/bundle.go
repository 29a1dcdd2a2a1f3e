package ircode

import (
	"bytes"
	"encoding/gob"
	"fmt"
)

// Binary format:
// - Magic number (4 bytes): "GOXB"
// - Version (1 byte)
// - Gob-encoded Program data

var bundleMagic = [4]byte{'G', 'O', 'X', 'B'}

const bundleVersion byte = 0x01

// Serialize converts a Program to its binary form.
func (p *Program) Serialize() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(bundleMagic[:])
	buf.WriteByte(bundleVersion)

	enc := gob.NewEncoder(buf)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("program gob encoding failed: %w", err)
	}
	return buf.Bytes(), nil
}

// Deserialize reads a Program back from its binary form.
func Deserialize(data []byte) (*Program, error) {
	if len(data) < 5 {
		return nil, fmt.Errorf("truncated program data: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], bundleMagic[:]) {
		return nil, fmt.Errorf("bad magic number: not a compiled program")
	}
	if data[4] != bundleVersion {
		return nil, fmt.Errorf("unsupported bytecode version 0x%02x", data[4])
	}

	var p Program
	dec := gob.NewDecoder(bytes.NewReader(data[5:]))
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("program gob decoding failed: %w", err)
	}
	return &p, nil
}
