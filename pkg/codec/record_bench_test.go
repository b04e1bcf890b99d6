//go:build bench
// +build bench

package codec

import "testing"

func BenchmarkRecordCodec_Encode(b *testing.B) {
	codec := NewRecordCodec()

	benchmarks := []struct {
		name   string
		values int
	}{
		{name: "small", values: 16},
		{name: "medium", values: 1024},
		{name: "large", values: 65536},
	}

	for _, bm := range benchmarks {
		values := make([]float32, bm.values)
		b.Run(bm.name, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := codec.Encode([]byte("node/0/0"), values); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRecordCodec_Decode(b *testing.B) {
	codec := NewRecordCodec()
	encoded, err := codec.Encode([]byte("node/0/0"), make([]float32, 1024))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := codec.Decode(encoded); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkBuilder_Bytes(b *testing.B) {
	builder := &Builder{
		Subcatchments: make([]string, 100),
		Nodes:         make([]string, 200),
		Links:         make([]string, 200),
		SubcatchVars:  8,
		NodeVars:      6,
		LinkVars:      5,
		SysVars:       14,
		ReportStep:    60,
		Periods:       100,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := builder.Bytes(); err != nil {
			b.Fatal(err)
		}
	}
}
