package sequence

import (
	"errors"
	"testing"
)

func TestRepeatMode_Cycle(t *testing.T) {
	mode := RepeatOff
	want := []RepeatMode{RepeatAll, RepeatOne, RepeatOff}
	for i, w := range want {
		mode = mode.Cycle()
		if mode != w {
			t.Errorf("cycle %d = %v, want %v", i+1, mode, w)
		}
	}

	if got := RepeatMode(42).Cycle(); got != RepeatOff {
		t.Errorf("invalid mode Cycle() = %v, want off", got)
	}
}

func TestParseRepeatMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RepeatMode
		wantErr bool
	}{
		{"off", RepeatOff, false},
		{"", RepeatOff, false},
		{"ONE", RepeatOne, false},
		{" all ", RepeatAll, false},
		{"track", RepeatOne, false},
		{"queue", RepeatAll, false},
		{"sometimes", RepeatOff, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRepeatMode(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownRepeatMode) {
					t.Errorf("ParseRepeatMode(%q) error = %v, want ErrUnknownRepeatMode", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepeatMode(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseRepeatMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepeatMode_StringRoundTrip(t *testing.T) {
	for _, m := range []RepeatMode{RepeatOff, RepeatAll, RepeatOne} {
		got, err := ParseRepeatMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseRepeatMode(%q) = %v, %v; want %v", m.String(), got, err, m)
		}
	}
	if RepeatMode(9).String() != "unknown" {
		t.Errorf("String() of invalid mode = %q", RepeatMode(9).String())
	}
}
