package benchmark_test

import (
	"testing"

	"github.com/dzonerzy/go-cmdline/cmdline"
)

func benchOptions() *cmdline.Options {
	return cmdline.NewOptions().
		Option("f", "file", "input file").Arg().Back().
		Option("v", "verbose", "verbose output").Back().
		Option("i", "include", "include paths").Args().Back().
		Option("D", "", "define key=value").Arg().Back()
}

func BenchmarkPositionalsOnly(b *testing.B) {
	opts := benchOptions()
	parser := cmdline.NewParser()
	args := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.Parse(opts, args)
	}
}

func BenchmarkUnboundedValues(b *testing.B) {
	opts := benchOptions()
	parser := cmdline.NewParser()
	args := []string{"--include", "a", "b", "c", "d", "-v"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.Parse(opts, args)
	}
}

func BenchmarkPosixBurst(b *testing.B) {
	opts := benchOptions()
	parser := cmdline.NewParser().WithFlattener(&cmdline.PosixFlattener{})
	args := []string{"-vfin.txt", "-Dkey=value"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.Parse(opts, args)
	}
}

func BenchmarkParseWithDefaults(b *testing.B) {
	opts := benchOptions()
	parser := cmdline.NewParser()
	defaults := cmdline.NewProperties().
		Set("file", "default.txt").
		Set("verbose", "yes")
	args := []string{"-D", "key=value"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.ParseWithDefaults(opts, args, defaults)
	}
}

func BenchmarkUnrecognizedWithSuggestions(b *testing.B) {
	opts := benchOptions()
	parser := cmdline.NewParser().Suggestions(true)
	args := []string{"--verbse"}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = parser.Parse(opts, args)
	}
}
