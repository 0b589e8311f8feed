package theme

import (
	"testing"

	"github.com/wbrown/chameleon"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		color uint32
		f     ColorFormat
		want  string
	}{
		{0xFFFFFFFF, FormatHex, "FFFFFF"},
		{0xFF0A1B2C, FormatHex, "0A1B2C"},
		{0x000A1B2C, FormatHex, "0A1B2C"},
		{0xFF0A1B2C, FormatDec, "10,27,44"},
		{0xFF000000, FormatDec, "0,0,0"},
	}

	for _, tt := range tests {
		if got := Format(tt.color, tt.f); got != tt.want {
			t.Errorf("Format(%08X, %v): expected %q, got %q", tt.color, tt.f, tt.want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]ColorFormat{"Hex": FormatHex, "hex": FormatHex, " DEC ": FormatDec} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFormat("rgb"); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"FFFFFF", 0xFFFFFFFF, false},
		{"#336699", 0xFF336699, false},
		{"00ff7f", 0xFF00FF7F, false},
		{"#fff", 0xFFFFFFFF, false},
		{"10,27,44", 0xFF0A1B2C, false},
		{" 255, 0 ,128 ", 0xFFFF0080, false},
		{"", 0, true},
		{"GGGGGG", 0, true},
		{"1,2", 0, true},
		{"1,2,300", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Expected %08X, got %08X", tt.want, got)
			}
		})
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, c := range []uint32{0xFF000000, 0xFF123456, 0xFFFEDCBA, 0xFFFFFFFF} {
		for _, f := range []ColorFormat{FormatHex, FormatDec} {
			got, err := ParseColor(Format(c, f))
			if err != nil || got != c {
				t.Errorf("Expected %08X back via %v, got %08X (%v)", c, f, got, err)
			}
		}
	}
}

func TestDefaultFallback(t *testing.T) {
	f := DefaultFallback()
	if f.Background1 != 0xFFFFFFFF || f.Background2 != 0xFFFFFFFF {
		t.Errorf("Expected white backgrounds, got %08X %08X", f.Background1, f.Background2)
	}
	if f.Foreground1 != 0xFF000000 || f.Foreground2 != 0xFF000000 {
		t.Errorf("Expected black foregrounds, got %08X %08X", f.Foreground1, f.Foreground2)
	}
}

func TestFallbackTheme(t *testing.T) {
	th := FallbackTheme(Fallback{Background1: 0xFF112233, Foreground1: 0xFFAABBCC, Foreground2: 0xFF445566}, "x.png")

	if th.Background2 != 0xFF112233 {
		t.Errorf("Expected second background to copy the first, got %08X", th.Background2)
	}
	wantLight := [4]uint32{0xFF112233, 0xFF112233, 0xFFAABBCC, 0xFF445566}
	if th.Light != wantLight {
		t.Errorf("Expected light %08X, got %08X", wantLight, th.Light)
	}
	wantDark := [4]uint32{0xFF445566, 0xFFAABBCC, 0xFF112233, 0xFF112233}
	if th.Dark != wantDark {
		t.Errorf("Expected dark %08X, got %08X", wantDark, th.Dark)
	}
	if th.Average != 0xFFFFFFFF || th.Luminance != 1 {
		t.Errorf("Expected white average with luminance 1, got %08X %v", th.Average, th.Luminance)
	}
	if !th.Fallback || th.Path != "x.png" {
		t.Errorf("Expected a fallback theme for x.png, got %+v", th)
	}
}

func TestThemeColor(t *testing.T) {
	th := &Theme{
		Background1: 1,
		Background2: 2,
		Foreground1: 3,
		Foreground2: 4,
		Average:     5,
		Light:       [4]uint32{10, 11, 12, 13},
		Dark:        [4]uint32{20, 21, 22, 23},
	}

	tests := map[chameleon.Role]uint32{
		chameleon.Background1: 1,
		chameleon.Background2: 2,
		chameleon.Foreground1: 3,
		chameleon.Foreground2: 4,
		chameleon.Average:     5,
		chameleon.Light1:      10,
		chameleon.Light4:      13,
		chameleon.Dark1:       20,
		chameleon.Dark3:       22,
		chameleon.RoleCount:   5,
	}
	for role, want := range tests {
		if got := th.Color(role); got != want {
			t.Errorf("Color(%v): expected %d, got %d", role, want, got)
		}
	}
}

func TestFromEngine(t *testing.T) {
	pixels := make([]uint32, 16)
	for i := range pixels {
		pixels[i] = 0xFF3366CC
	}
	e := chameleon.New()
	e.ProcessImage(pixels, 4, 4, true, false)
	e.FindKeyColors(chameleon.DefaultImageParams(), true)

	th := FromEngine(e)
	for _, role := range chameleon.Roles() {
		if got, want := th.Color(role), e.Color(role); got != want {
			t.Errorf("%v: expected %08X, got %08X", role, want, got)
		}
	}
	if th.Luminance != e.Luminance(chameleon.Average) {
		t.Errorf("Expected luminance %v, got %v", e.Luminance(chameleon.Average), th.Luminance)
	}
	if th.Fallback {
		t.Error("Expected a sampled theme")
	}
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"File": KindFile, "desktop": KindDesktop, "SCREEN": KindScreen} {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q): expected %v, got %v (%v)", in, want, got, err)
		}
	}
	if _, err := ParseKind("Window"); err == nil {
		t.Error("Expected an error for an unknown kind")
	}
	if got := Kind(9).String(); got != "Kind(9)" {
		t.Errorf("Expected Kind(9), got %q", got)
	}
}
