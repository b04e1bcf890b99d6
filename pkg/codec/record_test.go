package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"
)

func TestRecordCodec_EncodeDecodeRoundTrip(t *testing.T) {
	codec := NewRecordCodec()

	testCases := []struct {
		name   string
		key    []byte
		values []float32
	}{
		{
			name:   "simple series",
			key:    []byte("node/3/0"),
			values: []float32{1.5, 2.5, 3.5},
		},
		{
			name:   "empty key",
			key:    []byte(""),
			values: []float32{42},
		},
		{
			name:   "empty series",
			key:    []byte("link/0/1"),
			values: []float32{},
		},
		{
			name:   "special floats",
			key:    []byte("sys/0/4"),
			values: []float32{float32(math.Inf(1)), -0, math.MaxFloat32, math.SmallestNonzeroFloat32},
		},
		{
			name:   "long series",
			key:    bytes.Repeat([]byte("k"), 512),
			values: make([]float32, 4096),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			encoded, err := codec.Encode(tc.key, tc.values)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}

			if want := RecordHeaderSize + len(tc.key) + len(tc.values)*FieldSize; len(encoded) != want {
				t.Errorf("Encoded size mismatch: got %d, want %d", len(encoded), want)
			}

			record, err := codec.Decode(encoded)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}

			if err := record.Validate(); err != nil {
				t.Fatalf("Record validation failed: %v", err)
			}

			if !bytes.Equal(record.Key, tc.key) {
				t.Errorf("Key mismatch: got %v, want %v", record.Key, tc.key)
			}

			if len(record.Values) != len(tc.values) {
				t.Fatalf("Value count mismatch: got %d, want %d", len(record.Values), len(tc.values))
			}
			for i := range tc.values {
				if math.Float32bits(record.Values[i]) != math.Float32bits(tc.values[i]) {
					t.Errorf("Value %d mismatch: got %v, want %v", i, record.Values[i], tc.values[i])
				}
			}

			now := time.Now().UnixNano()
			if record.Timestamp > uint64(now) || record.Timestamp < uint64(now-int64(time.Minute)) {
				t.Errorf("Timestamp seems unreasonable: %d", record.Timestamp)
			}
		})
	}
}

func TestRecordCodec_CRCValidation(t *testing.T) {
	codec := NewRecordCodec()

	encoded, err := codec.Encode([]byte("subcatch/1/4"), []float32{0.1, 0.2, 0.3})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	t.Run("valid CRC passes validation", func(t *testing.T) {
		record, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if err := record.Validate(); err != nil {
			t.Errorf("Validation failed for valid record: %v", err)
		}
	})

	t.Run("corrupted value fails validation", func(t *testing.T) {
		corrupted := append([]byte(nil), encoded...)
		corrupted[len(corrupted)-1] ^= 0xFF

		record, err := codec.Decode(corrupted)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if err := record.Validate(); !errors.Is(err, ErrChecksum) {
			t.Errorf("Expected ErrChecksum, got %v", err)
		}
	})

	t.Run("corrupted CRC fails validation", func(t *testing.T) {
		corrupted := append([]byte(nil), encoded...)
		binary.LittleEndian.PutUint32(corrupted[0:], 0xDEADBEEF)

		record, err := codec.Decode(corrupted)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if err := record.Validate(); err == nil {
			t.Error("Expected validation to fail")
		}
	})
}

func TestRecordCodec_DecodeMalformed(t *testing.T) {
	codec := NewRecordCodec()

	t.Run("short header", func(t *testing.T) {
		if _, err := codec.Decode([]byte{0x01, 0x02, 0x03}); !errors.Is(err, ErrShortRecord) {
			t.Errorf("Expected ErrShortRecord, got %v", err)
		}
	})

	t.Run("declared count exceeds data", func(t *testing.T) {
		encoded, err := codec.Encode([]byte("k"), []float32{1, 2})
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		binary.LittleEndian.PutUint32(encoded[8:], 1000)
		if _, err := codec.Decode(encoded); !errors.Is(err, ErrShortRecord) {
			t.Errorf("Expected ErrShortRecord, got %v", err)
		}
	})

	t.Run("truncated tail", func(t *testing.T) {
		encoded, err := codec.Encode([]byte("k"), []float32{1, 2})
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if _, err := codec.Decode(encoded[:len(encoded)-1]); err == nil {
			t.Error("Expected error for truncated record")
		}
	})
}

func TestNewSeriesRecord(t *testing.T) {
	record, err := NewSeriesRecord([]byte("key"), []float32{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatalf("NewSeriesRecord failed: %v", err)
	}

	if record.KeySize != 3 {
		t.Errorf("Expected KeySize 3, got %d", record.KeySize)
	}
	if record.Count != 5 {
		t.Errorf("Expected Count 5, got %d", record.Count)
	}
	if record.Size() != RecordHeaderSize+3+5*FieldSize {
		t.Errorf("Unexpected size %d", record.Size())
	}
}
