package dsf

import "testing"

func BenchmarkOscillatorProcess(b *testing.B) {
	o := New(48000)
	o.SetModulationFrequency(330)
	o.SetRatio(0.8)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.Process()
	}
}

func BenchmarkOscillatorProcessBlock(b *testing.B) {
	o := New(48000)
	o.SetSync(false)
	buf := make([]float32, 2048)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.ProcessBlock(buf)
	}
}
