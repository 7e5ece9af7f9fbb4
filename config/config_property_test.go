package config_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/obrok/lens/config"
	"pgregory.net/rapid"
)

// Property 1: Validate reports exactly the missing keys.
func TestProperty_ValidationErrorCompleteness(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		requiredCount := rapid.IntRange(1, 5).Draw(t, "requiredCount")
		presentCount := rapid.IntRange(0, requiredCount).Draw(t, "presentCount")

		cfg := config.New()

		required := make([]string, requiredCount)
		for i := range required {
			required[i] = "section.key" + strconv.Itoa(i)
		}
		for i := 0; i < presentCount; i++ {
			if err := cfg.Set(required[i], "value"); err != nil {
				t.Fatal(err)
			}
		}

		err := cfg.Validate(required...)

		if presentCount == requiredCount {
			if err != nil {
				t.Fatal("validation should pass when all required keys present")
			}
			return
		}
		var valErr *config.ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("error should be ValidationError, got %v", err)
		}
		if len(valErr.MissingKeys) != requiredCount-presentCount {
			t.Fatalf("missing keys count wrong: got %d, want %d",
				len(valErr.MissingKeys), requiredCount-presentCount)
		}
	})
}

// Property 2: set values take precedence over defaults at any depth.
func TestProperty_Defaults(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		segments := rapid.SliceOfN(rapid.StringMatching(`[a-z]{3,10}`), 1, 3).Draw(t, "segments")
		key := segments[0]
		for _, s := range segments[1:] {
			key += "." + s
		}
		defaultValue := rapid.StringMatching(`[a-z]{5,15}`).Draw(t, "default")
		overrideValue := rapid.StringMatching(`[a-z]{5,15}`).Draw(t, "override")

		cfg := config.New().WithDefaults(map[string]any{key: defaultValue})

		if got := cfg.GetString(key); got != defaultValue {
			t.Fatalf("got %q, want default %q", got, defaultValue)
		}
		if err := cfg.Set(key, overrideValue); err != nil {
			t.Fatal(err)
		}
		if got := cfg.GetString(key); got != overrideValue {
			t.Fatalf("got %q, want override %q", got, overrideValue)
		}
	})
}

// Property 3: typed getters coerce ints however they were stored.
func TestProperty_TypeCoercion(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		intValue := rapid.IntRange(1, 10000).Draw(t, "int")

		cfg := config.New()
		for key, v := range map[string]any{
			"n.int":    intValue,
			"n.string": strconv.Itoa(intValue),
			"n.float":  float64(intValue),
		} {
			if err := cfg.Set(key, v); err != nil {
				t.Fatal(err)
			}
		}

		for _, key := range []string{"n.int", "n.string", "n.float"} {
			if got := cfg.GetInt(key); got != intValue {
				t.Fatalf("%s: got %d, want %d", key, got, intValue)
			}
		}
	})
}
