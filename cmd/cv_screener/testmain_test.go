package main

import (
	"os"
	"strings"
	"testing"

	"github.com/Nusiba000/CV-Screening-and-Candidate-Filtering-System/internal/config"
)

// TestMain clears CVS_* and DATABASE_URL so commands see only built-in defaults.
// Tests that need an override set it with t.Setenv.
func TestMain(m *testing.M) {
	clearConfigEnv()
	os.Exit(m.Run())
}

func clearConfigEnv() {
	prefix := config.EnvPrefix + "_"
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, prefix) {
			_ = os.Unsetenv(key)
		}
	}
	_ = os.Unsetenv("DATABASE_URL")
}
