package main

import (
	"reflect"
	"testing"

	"github.com/samcharles93/arraymap/pkg/arraymap"
)

func TestParseManifest(t *testing.T) {
	t.Parallel()

	raw := []byte(`
arrays:
  - dtype: "<f4"
    shape: [8, 16, 32]
  - dtype: "|b1"
    shape: [30, 15]
  - dtype: "<i8"
    shape: []
`)
	dtypes, shapes, err := parseManifest(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantDTypes := []arraymap.DType{arraymap.Float32, arraymap.Bool, arraymap.Int64}
	if !reflect.DeepEqual(dtypes, wantDTypes) {
		t.Fatalf("dtypes: got %v, want %v", dtypes, wantDTypes)
	}
	wantShapes := [][]int{{8, 16, 32}, {30, 15}, {}}
	if !reflect.DeepEqual(shapes, wantShapes) {
		t.Fatalf("shapes: got %v, want %v", shapes, wantShapes)
	}
}

func TestParseManifestBadDType(t *testing.T) {
	t.Parallel()

	raw := []byte(`
arrays:
  - dtype: ">f8"
    shape: [4]
`)
	if _, _, err := parseManifest(raw); err == nil {
		t.Fatalf("expected error for big-endian dtype")
	}
}

func TestParseManifestEmpty(t *testing.T) {
	t.Parallel()

	if _, _, err := parseManifest([]byte("arrays: []")); err == nil {
		t.Fatalf("expected error for empty manifest")
	}
}
