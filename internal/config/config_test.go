package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var jumper JumperConfig
	if err := yaml.Unmarshal(GetDefaultYAML("jumper"), &jumper); err != nil {
		t.Fatalf("embedded jumper.yaml does not parse: %v", err)
	}
	if jumper != DefaultJumperConfig() {
		t.Errorf("embedded jumper defaults drifted:\n got %+v\nwant %+v", jumper, DefaultJumperConfig())
	}

	var stacker StackerConfig
	if err := yaml.Unmarshal(GetDefaultYAML("stacker"), &stacker); err != nil {
		t.Fatalf("embedded stacker.yaml does not parse: %v", err)
	}
	if stacker != DefaultStackerConfig() {
		t.Errorf("embedded stacker defaults drifted:\n got %+v\nwant %+v", stacker, DefaultStackerConfig())
	}

	if GetDefaultYAML("nope") != nil {
		t.Error("unknown game should have no embedded YAML")
	}
}

func TestDefaultsAreValid(t *testing.T) {
	if err := DefaultJumperConfig().Validate(); err != nil {
		t.Errorf("default jumper config invalid: %v", err)
	}
	if err := DefaultStackerConfig().Validate(); err != nil {
		t.Errorf("default stacker config invalid: %v", err)
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stacker.yaml")
	if err := os.WriteFile(path, []byte("board:\n  width: 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadStacker(path, DifficultyNormal)
	if err != nil {
		t.Fatalf("LoadStacker() failed: %v", err)
	}
	if cfg.Board.Width != 12 {
		t.Errorf("width = %d, expected override 12", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("height = %d, expected default 20 to survive", cfg.Board.Height)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadJumper(filepath.Join(t.TempDir(), "missing.yaml"), DifficultyNormal); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("world: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJumper(bad, DifficultyNormal); err == nil {
		t.Error("malformed YAML should fail")
	}

	unplayable := filepath.Join(t.TempDir(), "unplayable.yaml")
	if err := os.WriteFile(unplayable, []byte("platforms:\n  spacing: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJumper(unplayable, DifficultyNormal); !errors.Is(err, ErrInvalid) {
		t.Errorf("unreachable rungs should fail validation, got %v", err)
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}
	zeroLevel := write("zero.yaml", "scoring:\n  lines_per_level: 0\n")
	narrow := write("narrow.yaml", "board:\n  width: 4\n")
	wide := write("wide.yaml", "board:\n  width: 12\n")

	tests := []struct {
		name, game, path, difficulty string
		wantInvalid, wantErr          bool
	}{
		{"valid override", "stacker", wide, "hard", false, false},
		{"zero lines per level", "stacker", zeroLevel, "", true, true},
		{"board too narrow", "stacker", narrow, "", true, true},
		{"missing file", "jumper", filepath.Join(dir, "missing.yaml"), "", false, true},
		{"unknown difficulty", "stacker", wide, "nightmare", false, true},
		{"game without config", "other", zeroLevel, "", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.game, tc.path, tc.difficulty)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Check() error = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantInvalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Check() error = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestStackerValidateBoardSize(t *testing.T) {
	tests := []struct {
		width, height int
		ok            bool
	}{
		{4, 20, false},
		{5, 20, true},
		{10, 20, true},
		{10, 3, false},
		{10, 4, true},
		{0, 0, false},
	}

	for _, tc := range tests {
		cfg := DefaultStackerConfig()
		cfg.Board.Width, cfg.Board.Height = tc.width, tc.height
		err := cfg.Validate()
		if tc.ok && err != nil {
			t.Errorf("%dx%d board rejected: %v", tc.width, tc.height, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalid) {
			t.Errorf("%dx%d board accepted, expected ErrInvalid", tc.width, tc.height)
		}
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", DifficultyNormal, true},
	}

	for _, tc := range tests {
		got, err := ParsePreset(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePreset(%q) error = %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParsePreset(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}

func TestPresetsStayPlayable(t *testing.T) {
	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		j := DefaultJumperConfig()
		ApplyJumperPreset(&j, p)
		if err := j.Validate(); err != nil {
			t.Errorf("jumper preset %s invalid: %v", p, err)
		}

		s := DefaultStackerConfig()
		ApplyStackerPreset(&s, p)
		if err := s.Validate(); err != nil {
			t.Errorf("stacker preset %s invalid: %v", p, err)
		}
	}
}

func TestStackerInterval(t *testing.T) {
	timing := DefaultStackerConfig().Timing

	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 900 * time.Millisecond},
		{9, 200 * time.Millisecond},
		{10, 100 * time.Millisecond},
		{15, 100 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := timing.Interval(tc.level); got != tc.want {
			t.Errorf("Interval(%d) = %v, expected %v", tc.level, got, tc.want)
		}
	}
}
