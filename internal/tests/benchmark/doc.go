// Package benchmark provides performance benchmarks for snapshot loading,
// migration and saving.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./internal/tests/benchmark/...
//
// Run only the migration paths:
//
//	go test -bench=BenchmarkLoad -benchmem -benchtime=5s ./internal/tests/benchmark/...
//
// Compare results:
//
//	benchstat old.txt new.txt
package benchmark
