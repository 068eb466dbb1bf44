package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" DEBUG ", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := ParseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "true")
	t.Setenv(EnvLogNoColor, "yes-please")

	cfg := Resolve(ProfileTest)
	if cfg.Level != zerolog.ErrorLevel {
		t.Fatalf("expected error level, got %v", cfg.Level)
	}
	if !cfg.Timestamp {
		t.Fatalf("expected timestamp override")
	}
	if !cfg.NoColor {
		t.Fatalf("invalid bool must keep the profile default")
	}
}

func TestApplyWritesToConfiguredOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := Apply(Config{Level: zerolog.InfoLevel, NoColor: true, Out: &buf})
	defer Apply(Resolve(ProfileTest))

	logger.Debug().Msg("hidden")
	logger.Info().Str("tag", "COMPND").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked at info level: %q", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "tag=COMPND") {
		t.Fatalf("unexpected output: %q", out)
	}
}
