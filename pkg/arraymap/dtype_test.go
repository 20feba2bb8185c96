package arraymap

import "testing"

func TestDTypeTagRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		dtype DType
		tag   string
	}{
		{Bool, "|b1"},
		{Int8, "|i1"},
		{Int16, "<i2"},
		{Int32, "<i4"},
		{Int64, "<i8"},
		{Uint8, "|u1"},
		{Uint16, "<u2"},
		{Uint32, "<u4"},
		{Uint64, "<u8"},
		{Float32, "<f4"},
		{Float64, "<f8"},
		{Bytes(50), "|S50"},
		{Bytes(1), "|S1"},
	}
	for _, tc := range cases {
		if got := tc.dtype.String(); got != tc.tag {
			t.Errorf("%v.String() = %q, want %q", tc.dtype, got, tc.tag)
		}
		parsed, err := ParseDType(tc.tag)
		if err != nil {
			t.Errorf("ParseDType(%q): %v", tc.tag, err)
			continue
		}
		if parsed != tc.dtype {
			t.Errorf("ParseDType(%q) = %v, want %v", tc.tag, parsed, tc.dtype)
		}
	}
}

func TestParseDTypePadded(t *testing.T) {
	t.Parallel()

	d, err := ParseDType("<f4     ")
	if err != nil {
		t.Fatalf("parse padded tag: %v", err)
	}
	if d != Float32 {
		t.Fatalf("got %v, want %v", d, Float32)
	}
}

func TestParseDTypeRejectsInvalid(t *testing.T) {
	t.Parallel()

	bad := []string{
		"",
		"f4",
		">f4", // big-endian
		"<f3",
		"<x4",
		"|S0",
		"|S-5",
		"<i16",
	}
	for _, tag := range bad {
		if _, err := ParseDType(tag); err == nil {
			t.Errorf("ParseDType(%q): expected error", tag)
		}
	}
}

func TestItemSize(t *testing.T) {
	t.Parallel()

	if got := Bool.ItemSize(); got != 1 {
		t.Fatalf("bool item size = %d", got)
	}
	if got := Float32.ItemSize(); got != 4 {
		t.Fatalf("float32 item size = %d", got)
	}
	if got := Int64.ItemSize(); got != 8 {
		t.Fatalf("int64 item size = %d", got)
	}
	if got := Bytes(50).ItemSize(); got != 50 {
		t.Fatalf("bytes50 item size = %d", got)
	}
}
