package pisano

import (
	"strings"
	"testing"
)

func TestTitle(t *testing.T) {
	assertString(t, Title(10), "Pisano 10")
	assertString(t, Title(13), "Pisano 13")
}

func TestSubtitle(t *testing.T) {
	t.Run("Describes a mirrored period", func(t *testing.T) {
		got, err := Subtitle(10)
		assertNoError(t, err)

		want := "Fibonacci 1-60 mod 10 (4*15 notes with mirrored 2nd half)"
		assertString(t, got, want)

		if !strings.Contains(got, "Fibonacci 1-60 mod 10") {
			t.Errorf("subtitle %q missing the range clause", got)
		}
	})

	t.Run("Describes an unmirrored period", func(t *testing.T) {
		got, err := Subtitle(8)
		assertNoError(t, err)

		want := "Fibonacci 1-12 mod 8 (2*6 notes)"
		assertString(t, got, want)

		if strings.Contains(got, "mirrored") {
			t.Errorf("subtitle %q should not mention a mirror", got)
		}
	})

	t.Run("Propagates analysis errors", func(t *testing.T) {
		if _, err := Subtitle(1); err == nil {
			t.Error("expected an error for modulus 1")
		}
	})
}
