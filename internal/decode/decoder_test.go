package decode

import (
	"testing"
)

func TestBuildArgs(t *testing.T) {
	args := BuildArgs("/videos/input.mkv")

	want := []string{
		"-hide_banner",
		"-v", "error",
		"-i", "/videos/input.mkv",
		"-map", "0:v:0",
		"-f", "rawvideo",
		"-pix_fmt", "gray",
		"-",
	}

	if len(args) != len(want) {
		t.Fatalf("args length = %d, want %d", len(args), len(want))
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}
