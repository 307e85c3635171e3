package domain

import (
	"strings"
	"testing"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want LengthBand
	}{
		{
			name: "empty text is normal",
			text: "",
			want: LengthBandNormal,
		},
		{
			name: "short tweet is normal",
			text: "Nothing beats a quiet coffee before the chaos starts.",
			want: LengthBandNormal,
		},
		{
			name: "exactly 250 is normal",
			text: strings.Repeat("a", 250),
			want: LengthBandNormal,
		},
		{
			name: "251 enters the warning band",
			text: strings.Repeat("a", 251),
			want: LengthBandWarning,
		},
		{
			name: "exactly 280 still warning",
			text: strings.Repeat("a", 280),
			want: LengthBandWarning,
		},
		{
			name: "281 is over the limit",
			text: strings.Repeat("a", 281),
			want: LengthBandOverLimit,
		},
		{
			name: "multibyte runes count as single characters",
			text: strings.Repeat("é", 260),
			want: LengthBandWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BandFor(tt.text); got != tt.want {
				t.Errorf("BandFor(%d chars) = %s, want %s", CharCount(tt.text), got, tt.want)
			}
		})
	}
}

func TestCharCount(t *testing.T) {
	if got := CharCount("héllo"); got != 5 {
		t.Errorf("expected 5 runes, got %d", got)
	}
}
