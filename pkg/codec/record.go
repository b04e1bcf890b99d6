package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"
	"time"
)

// RecordHeaderSize is CRC32(4) + KeySize(4) + Count(4) + Timestamp(8)
const RecordHeaderSize = 20

var (
	ErrShortRecord = errors.New("codec: data too short for series record")
	ErrChecksum    = errors.New("codec: series record checksum mismatch")
)

// SeriesRecord is a persisted time series with integrity metadata
type SeriesRecord struct {
	CRC32     uint32    // CRC32 checksum for integrity
	KeySize   uint32    // Size of the key in bytes
	Count     uint32    // Number of values
	Timestamp uint64    // Unix timestamp in nanoseconds
	Key       []byte    // Key data
	Values    []float32 // Series values
}

// RecordCodec handles serialization and deserialization of series records
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// Encode serializes a keyed series
// Format: [CRC32(4)][KeySize(4)][Count(4)][Timestamp(8)][Key][Values]
func (c *RecordCodec) Encode(key []byte, values []float32) ([]byte, error) {
	r, err := NewSeriesRecord(key, values)
	if err != nil {
		return nil, err
	}
	r.CRC32 = r.calculateCRC32()

	buf := make([]byte, r.Size())

	binary.LittleEndian.PutUint32(buf[0:], r.CRC32)
	binary.LittleEndian.PutUint32(buf[4:], r.KeySize)
	binary.LittleEndian.PutUint32(buf[8:], r.Count)
	binary.LittleEndian.PutUint64(buf[12:], r.Timestamp)
	copy(buf[RecordHeaderSize:], r.Key)
	off := RecordHeaderSize + int(r.KeySize)
	for i, v := range r.Values {
		PutFloat32(buf[off+i*FieldSize:], v)
	}

	return buf, nil
}

// Decode deserializes a binary series record. The key aliases data.
func (c *RecordCodec) Decode(data []byte) (*SeriesRecord, error) {
	if len(data) < RecordHeaderSize {
		return nil, ErrShortRecord
	}

	r := &SeriesRecord{}
	r.CRC32 = binary.LittleEndian.Uint32(data[0:4])
	r.KeySize = binary.LittleEndian.Uint32(data[4:8])
	r.Count = binary.LittleEndian.Uint32(data[8:12])
	r.Timestamp = binary.LittleEndian.Uint64(data[12:20])

	need := uint64(RecordHeaderSize) + uint64(r.KeySize) + uint64(r.Count)*FieldSize
	if uint64(len(data)) < need {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortRecord, len(data), need)
	}

	keyEnd := RecordHeaderSize + int(r.KeySize)
	r.Key = data[RecordHeaderSize:keyEnd]
	r.Values = Float32s(data[keyEnd : keyEnd+int(r.Count)*FieldSize])

	return r, nil
}

// Validate checks the integrity of a record using CRC32
func (r *SeriesRecord) Validate() error {
	if sum := r.calculateCRC32(); r.CRC32 != sum {
		return fmt.Errorf("%w: %d != %d", ErrChecksum, r.CRC32, sum)
	}
	return nil
}

// Size returns the total size of the record when encoded
func (r *SeriesRecord) Size() int {
	return RecordHeaderSize + len(r.Key) + len(r.Values)*FieldSize
}

// NewSeriesRecord creates a new record stamped with the current time
func NewSeriesRecord(key []byte, values []float32) (*SeriesRecord, error) {
	if uint64(len(key)) > math.MaxUint32 {
		return nil, errors.New("codec: key too large")
	}
	if uint64(len(values)) > math.MaxUint32/FieldSize {
		return nil, errors.New("codec: series too large")
	}
	return &SeriesRecord{
		KeySize:   uint32(len(key)),
		Count:     uint32(len(values)),
		Timestamp: uint64(time.Now().UnixNano()),
		Key:       key,
		Values:    values,
	}, nil
}

// calculateCRC32 covers every field after the CRC itself
func (r *SeriesRecord) calculateCRC32() uint32 {
	crc := crc32.NewIEEE()

	var hdr [RecordHeaderSize - 4]byte
	binary.LittleEndian.PutUint32(hdr[0:], r.KeySize)
	binary.LittleEndian.PutUint32(hdr[4:], r.Count)
	binary.LittleEndian.PutUint64(hdr[8:], r.Timestamp)
	crc.Write(hdr[:])
	crc.Write(r.Key)

	var field [FieldSize]byte
	for _, v := range r.Values {
		PutFloat32(field[:], v)
		crc.Write(field[:])
	}

	return crc.Sum32()
}
