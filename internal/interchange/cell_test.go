package interchange

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tkreindler/InventoryManagementAPI/internal/domain"
)

func TestDecodeMoney(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"12.34", "12.34", false},
		{"", "0", false},
		{"  ", "0", false},
		{"-3.5", "-3.5", false},
		{"$1,234.50", "1234.5", false},
		{"(3.00)", "-3", false},
		{"($12.10)", "-12.1", false},
		{"1.5E+2", "150", false},
		{"0.1", "0.1", false},
		{"abc", "", true},
		{"12..3", "", true},
	}
	for _, tt := range tests {
		got, err := DecodeMoney(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("DecodeMoney(%q) expected error, got %s", tt.raw, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("DecodeMoney(%q) error = %v", tt.raw, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("DecodeMoney(%q) = %s, want %s", tt.raw, got, tt.want)
		}
	}
}

func TestEncodeMoneyIsExact(t *testing.T) {
	c := EncodeMoney(decimal.RequireFromString("0.10"))
	got, err := DecodeMoney(c.Value)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.RequireFromString("0.1")) {
		t.Errorf("round trip = %s", got)
	}
	if !c.Numeric() {
		t.Error("money cell should be numeric")
	}
}

func TestDecodeIdentifier(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"42", 42, false},
		{" 885909950805 ", 885909950805, false},
		{"1.2E+3", 0, true},
		{"1.94735012345E+11", 194735012345, false},
		{"1.947350123450E+11", 194735012345, false},
		{"2e+11", 0, true},
		{"9223372036854775807", 9223372036854775807, false},
		{"", 0, true},
		{"12.5", 0, true},
		{"twelve", 0, true},
		{"1E+30", 0, true},
	}
	for _, tt := range tests {
		got, err := DecodeIdentifier(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("DecodeIdentifier(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("DecodeIdentifier(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}

	if v, err := decodeOptionalIdentifier(""); err != nil || v != 0 {
		t.Errorf("decodeOptionalIdentifier(\"\") = %d, %v", v, err)
	}
}

func TestText(t *testing.T) {
	if c := EncodeText(nil); !c.Blank {
		t.Error("nil text should encode blank")
	}
	if DecodeText("") != nil {
		t.Error("empty cell should decode to nil")
	}
	s := "Barbie"
	if c := EncodeText(&s); c.Blank || c.Value != s {
		t.Errorf("EncodeText = %+v", c)
	}
	if got := DecodeText(" x "); got == nil || *got != " x " {
		t.Errorf("DecodeText kept %v", got)
	}
}

func TestStatus(t *testing.T) {
	if c := EncodeStatus(domain.ItemStatusInStock); c.Value != "InStock" || c.Numeric() {
		t.Errorf("EncodeStatus = %+v", c)
	}
	if _, err := DecodeStatus("Lost"); err == nil {
		t.Error("unknown status should fail")
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2021, 7, 4, 15, 30, 12, 345000000, time.UTC),
		time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2099, 12, 31, 23, 59, 59, 999000000, time.UTC),
	}
	for _, want := range times {
		c := EncodeTimestamp(want)
		got := DecodeTimestamp(c.Value)
		if !got.Equal(want) {
			t.Errorf("%v -> %s -> %v", want, c.Value, got)
		}
	}
}

func TestTimestampSerial(t *testing.T) {
	c := EncodeTimestamp(time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC))
	if c.Value != "2.5" {
		t.Errorf("serial = %s, want 2.5", c.Value)
	}
	local := time.Date(2024, 1, 2, 3, 0, 0, 0, time.FixedZone("X", 3600))
	if got := DecodeTimestamp(EncodeTimestamp(local).Value); got.Location() != time.UTC || !got.Equal(local) {
		t.Errorf("decoded %v, want %v in UTC", got, local)
	}
}

func TestTimestampSentinel(t *testing.T) {
	c := EncodeTimestamp(time.Time{})
	if c.Blank || c.Value != "0" {
		t.Errorf("sentinel encoded as %+v, want serial 0", c)
	}
	for _, raw := range []string{"", "0", "-1", "n/a", "NaN", "99999999"} {
		if got := DecodeTimestamp(raw); !got.IsZero() {
			t.Errorf("DecodeTimestamp(%q) = %v, want sentinel", raw, got)
		}
	}
}

func TestDecodeTimestampText(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"3/15/23 12:00", time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)},
		{"2023-03-15 12:00:00", time.Date(2023, 3, 15, 12, 0, 0, 0, time.UTC)},
		{"N/A", time.Time{}},
		{"not a date", time.Time{}},
	}
	for _, tt := range tests {
		if got := DecodeTimestamp(tt.raw); !got.Equal(tt.want) {
			t.Errorf("DecodeTimestamp(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
