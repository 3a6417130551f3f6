// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jsonrepair_test

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/tailscale/hujson"

	"github.com/cflynn/jsonrepair"
)

// A local file path or a URL. For example:
// https://raw.githubusercontent.com/prust/wikipedia-movie-data/master/movies.json
var inputPath = flag.String("input", "testdata/input.json", "Input JSON file path or URL")

func readInput() ([]byte, error) {
	if strings.HasPrefix(*inputPath, "http://") || strings.HasPrefix(*inputPath, "https://") {
		rsp, err := http.Get(*inputPath)
		if err != nil {
			return nil, err
		}
		defer rsp.Body.Close()
		return io.ReadAll(rsp.Body)
	}
	return os.ReadFile(*inputPath)
}

// BenchmarkFastPath compares the cost of the conformant-decode fast path
// against the raw decoders it wraps, on input that is assumed to already
// be valid JSON: this is the common case the fast path exists for.
func BenchmarkFastPath(b *testing.B) {
	input, err := readInput()
	if err != nil {
		b.Skipf("Reading test input: %v", err)
	}
	b.Logf("Benchmark input: %d bytes", len(input))

	b.Run("Std", func(b *testing.B) {
		b.Run("Unmarshal", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				var ignore any
				if err := json.Unmarshal(input, &ignore); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})

		b.Run("Decode", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				dec := json.NewDecoder(bytes.NewReader(input))
				var ignore any
				if err := dec.Decode(&ignore); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	})

	b.Run("HuJSON", func(b *testing.B) {
		b.Run("Standardize", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := hujson.Standardize(input); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	})

	b.Run("JSONRepair", func(b *testing.B) {
		b.Run("RepairToValue", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := jsonrepair.RepairToValue(string(input), jsonrepair.Options{}); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})

		b.Run("RepairToValue/SkipInitialValidation", func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				opts := jsonrepair.Options{SkipInitialValidation: true}
				if _, err := jsonrepair.RepairToValue(string(input), opts); err != nil {
					b.Fatalf("Unexpected error: %v", err)
				}
			}
		})
	})
}
