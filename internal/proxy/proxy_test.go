package proxy

import (
	"math"
	"testing"
)

func TestFitsInt(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want bool
	}{
		{"zero", 0, true},
		{"small body", 4 << 20, true},
		{"max int64", math.MaxInt64, math.MaxInt == math.MaxInt64},
		{"over 2GiB", 3 << 30, int64(int(3<<30)) == 3<<30},
	}
	for _, tt := range tests {
		if got := fitsInt(tt.n); got != tt.want {
			t.Errorf("%s: fitsInt(%d) = %v, want %v", tt.name, tt.n, got, tt.want)
		}
	}
}

func TestDecodeOriginURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "https://cdn.example.com/clip.mp4", "https://cdn.example.com/clip.mp4"},
		{"encoded slash", "https://cdn.example.com/media%2Fclip.mp4", "https://cdn.example.com/media/clip.mp4"},
		{"plus preserved", "https://cdn.example.com/a+b.mp4", "https://cdn.example.com/a+b.mp4"},
		{"invalid escape falls back", "https://cdn.example.com/bad%zz", "https://cdn.example.com/bad%zz"},
	}
	for _, tt := range tests {
		if got := decodeOriginURL(tt.raw); got != tt.want {
			t.Errorf("%s: decodeOriginURL(%q) = %q, want %q", tt.name, tt.raw, got, tt.want)
		}
	}
}
