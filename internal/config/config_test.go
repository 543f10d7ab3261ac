package config

import (
	"testing"
)

func TestParseSensitivity(t *testing.T) {
	tests := []struct {
		input   string
		want    Sensitivity
		wantErr bool
	}{
		{"low", SensitivityLow, false},
		{"medium", SensitivityMedium, false},
		{"high", SensitivityHigh, false},
		{"custom", SensitivityCustom, false},
		{"HIGH", SensitivityHigh, false},
		{"", "", true},
		{"extreme", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSensitivity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSensitivity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSensitivity(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSearchRange(t *testing.T) {
	tests := []struct {
		input   string
		want    SearchRange
		wantErr bool
	}{
		{"auto", SearchRangeAuto, false},
		{"small", SearchRangeSmall, false},
		{"medium", SearchRangeMedium, false},
		{"large", SearchRangeLarge, false},
		{"Large", SearchRangeLarge, false},
		{"huge", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSearchRange(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSearchRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSearchRange(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFcode(t *testing.T) {
	tests := []struct {
		name   string
		r      SearchRange
		width  int
		height int
		want   int
	}{
		{"small fixed", SearchRangeSmall, 3840, 2160, 2},
		{"medium fixed", SearchRangeMedium, 320, 240, 4},
		{"large fixed", SearchRangeLarge, 320, 240, 6},
		{"auto SD", SearchRangeAuto, 704, 480, 3},
		{"auto SD boundary", SearchRangeAuto, 720, 480, 3},
		{"auto HD", SearchRangeAuto, 1280, 720, 4},
		{"auto FHD boundary", SearchRangeAuto, 1920, 1080, 4},
		{"auto UHD", SearchRangeAuto, 3840, 2160, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Fcode(tt.r, tt.width, tt.height); got != tt.want {
				t.Errorf("Fcode(%v, %d, %d) = %d, want %d", tt.r, tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestThresholdsResolution(t *testing.T) {
	cfg := NewConfig("in.mkv")
	if got := cfg.Thresholds(); got != ThresholdsMedium {
		t.Errorf("default thresholds = %+v, want medium", got)
	}

	cfg.Sensitivity = SensitivityLow
	if got := cfg.Thresholds(); got != ThresholdsLow {
		t.Errorf("low thresholds = %+v", got)
	}

	cfg.Sensitivity = SensitivityHigh
	if got := cfg.Thresholds(); got != ThresholdsHigh {
		t.Errorf("high thresholds = %+v", got)
	}

	cfg.Sensitivity = SensitivityCustom
	cfg.CustomThresholds = &Thresholds{IntraSAD: 1234, CutDensity: 77}
	if got := cfg.Thresholds(); got.IntraSAD != 1234 || got.CutDensity != 77 {
		t.Errorf("custom thresholds = %+v", got)
	}
}

func TestValidate(t *testing.T) {
	cfg := NewConfig("in.mkv")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	cfg.Sensitivity = SensitivityCustom
	if err := cfg.Validate(); err == nil {
		t.Error("custom sensitivity without thresholds should fail validation")
	}

	cfg.CustomThresholds = &Thresholds{IntraSAD: 2000, CutDensity: 90}
	if err := cfg.Validate(); err != nil {
		t.Errorf("custom sensitivity with thresholds should validate: %v", err)
	}

	cfg.CustomThresholds = &Thresholds{IntraSAD: 0, CutDensity: 90}
	if err := cfg.Validate(); err == nil {
		t.Error("zero custom threshold should fail validation")
	}

	cfg = NewConfig("in.mkv")
	cfg.MinSceneLen = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative min scene length should fail validation")
	}

	cfg = NewConfig("in.mkv")
	cfg.SearchRange = "gigantic"
	if err := cfg.Validate(); err == nil {
		t.Error("invalid search range should fail validation")
	}
}
