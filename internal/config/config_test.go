package config

import (
	"testing"
	"time"
)

func TestRequireEnv(t *testing.T) {
	t.Run("variable set", func(t *testing.T) {
		t.Setenv("LEARNTUBE_TEST_VAR", "test_value")
		if got := requireEnv("LEARNTUBE_TEST_VAR"); got != "test_value" {
			t.Errorf("requireEnv() = %v, want %v", got, "test_value")
		}
	})

	t.Run("variable not set", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("requireEnv() should have panicked")
			}
		}()
		requireEnv("LEARNTUBE_TEST_VAR_MISSING")
	})
}

func TestRequireEnvInt(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		expected  int
		wantPanic bool
	}{
		{name: "valid integer", value: "42", expected: 42},
		{name: "invalid integer", value: "not_a_number", wantPanic: true},
		{name: "missing variable", value: "", wantPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LEARNTUBE_TEST_INT", tt.value)

			if tt.wantPanic {
				defer func() {
					if r := recover(); r == nil {
						t.Errorf("requireEnvInt() should have panicked")
					}
				}()
			}

			result := requireEnvInt("LEARNTUBE_TEST_INT")
			if !tt.wantPanic && result != tt.expected {
				t.Errorf("requireEnvInt() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: nil},
		{name: "single value", input: "value1", expected: []string{"value1"}},
		{name: "multiple values", input: "value1, value2 ,value3", expected: []string{"value1", "value2", "value3"}},
		{name: "quoted values", input: `"a.example.com", 'b.example.com'`, expected: []string{"a.example.com", "b.example.com"}},
		{name: "blank entries dropped", input: "a,, ,b", expected: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitAndTrim(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitAndTrim() = %v, want %v", result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("splitAndTrim()[%d] = %v, want %v", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestUnquoteSecret(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "hunter2", want: "hunter2"},
		{name: "double quoted", input: `"hunter2"`, want: "hunter2"},
		{name: "single quoted with spaces", input: `' hunter2 '`, want: "hunter2"},
		{name: "escaped dollar and at", input: `p\$ss\@word`, want: "p$ss@word"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unquoteSecret(tt.input); got != tt.want {
				t.Errorf("unquoteSecret(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustDuration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      time.Duration
		expected time.Duration
	}{
		{name: "valid duration", value: "5s", def: time.Second, expected: 5 * time.Second},
		{name: "invalid duration uses default", value: "invalid", def: 10 * time.Second, expected: 10 * time.Second},
		{name: "missing variable uses default", value: "", def: 300 * time.Millisecond, expected: 300 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LEARNTUBE_TEST_DURATION", tt.value)
			if got := mustDuration("LEARNTUBE_TEST_DURATION", tt.def); got != tt.expected {
				t.Errorf("mustDuration() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestMustBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		def      bool
		expected bool
	}{
		{name: "true value", value: "true", def: false, expected: true},
		{name: "false value", value: "false", def: true, expected: false},
		{name: "invalid value uses default", value: "invalid", def: true, expected: true},
		{name: "missing variable uses default", value: "", def: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LEARNTUBE_TEST_BOOL", tt.value)
			if got := mustBool("LEARNTUBE_TEST_BOOL", tt.def); got != tt.expected {
				t.Errorf("mustBool() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestLoadMemoryStorage(t *testing.T) {
	t.Setenv("LEARNTUBE_STORAGE", "memory")
	t.Setenv("LEARNTUBE_OWNER_PASSWORD", `"s3cr\$t"`)
	t.Setenv("LEARNTUBE_SEARCH_DEBOUNCE", "")
	t.Setenv("LEARNTUBE_TRUST_PROXY", "")

	cfg := Load()

	if cfg.Storage != StorageMemory {
		t.Errorf("Storage = %q, want %q", cfg.Storage, StorageMemory)
	}
	if cfg.RedisAddr != "" {
		t.Errorf("RedisAddr should stay empty in memory mode, got %q", cfg.RedisAddr)
	}
	if cfg.OwnerPassword != "s3cr$t" {
		t.Errorf("OwnerPassword = %q, want %q", cfg.OwnerPassword, "s3cr$t")
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 300ms", cfg.SearchDebounce)
	}
	if cfg.TrustProxy {
		t.Error("TrustProxy must be opt-in, forwarded headers are client controlled otherwise")
	}
}

func TestLoadRejectsUnknownStorage(t *testing.T) {
	t.Setenv("LEARNTUBE_STORAGE", "sqlite")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked on unknown storage")
		}
	}()
	Load()
}

func TestLoadRedisRequiresPassword(t *testing.T) {
	t.Setenv("LEARNTUBE_STORAGE", "redis")
	t.Setenv("LEARNTUBE_REDIS_ADDR", "localhost:6379")
	t.Setenv("LEARNTUBE_REDIS_DB", "0")
	t.Setenv("LEARNTUBE_REDIS_PASSWORD_REQUIRED", "true")
	t.Setenv("LEARNTUBE_REDIS_PASSWORD", "")

	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Load() should have panicked without redis password")
		}
	}()
	Load()
}

func TestRedacted(t *testing.T) {
	cfg := &Config{
		RedisPassword:     "pw",
		OwnerPassword:     "owner",
		OwnerPasswordHash: "abc",
		SessionKey:        "key",
	}

	r := cfg.Redacted()
	for name, v := range map[string]string{
		"RedisPassword":     r.RedisPassword,
		"OwnerPassword":     r.OwnerPassword,
		"OwnerPasswordHash": r.OwnerPasswordHash,
		"SessionKey":        r.SessionKey,
	} {
		if v != "***REDACTED***" {
			t.Errorf("%s = %q, want redacted", name, v)
		}
	}
	if cfg.OwnerPassword != "owner" {
		t.Error("Redacted() must not mutate the receiver")
	}
}
