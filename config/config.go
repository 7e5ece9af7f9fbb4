// Package config provides configuration loading and validation on top of
// lenses. Values live in one nested document; keys are dotted paths into it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"github.com/obrok/lens"
	"github.com/obrok/lens/codec"
	lenserr "github.com/obrok/lens/errors"
	"github.com/obrok/lens/logging"
	"github.com/spf13/cast"
)

// Config holds configuration values.
type Config struct {
	mu       sync.RWMutex
	values   any
	defaults any
	logger   *slog.Logger
}

// New creates a new empty Config.
func New() *Config {
	return &Config{
		values:   lens.NewObject(),
		defaults: lens.NewObject(),
		logger:   logging.Nop(),
	}
}

// WithLogger sets the logger used to report loads and writes.
func (c *Config) WithLogger(logger *slog.Logger) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = logger
	return c
}

// log returns the current logger. Callers must not hold c.mu.
func (c *Config) log() *slog.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.logger
}

// WithDefaults sets default values. Keys may be dotted paths.
func (c *Config) WithDefaults(defaults map[string]any) *Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range sortedKeys(defaults) {
		updated, err := lens.Put(WritePath(k), c.defaults, defaults[k])
		if err != nil {
			c.logger.Warn("default ignored", "key", k, logging.Err(err))
			continue
		}
		c.defaults = updated
	}
	return c
}

// LoadFile loads configuration from a JSON or YAML file and merges it into
// the current values. Objects merge key by key; anything else replaces.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return lenserr.Wrapf(err, "failed to read config file %s", path)
	}
	doc, err := codec.ForPath(path).Decode(data)
	if err != nil {
		return lenserr.Wrapf(err, "failed to parse config file %s", path)
	}
	if doc == nil {
		return nil
	}
	if lens.ShapeOf(doc) != lens.ShapeAssoc {
		return lenserr.Wrapf(lenserr.InvalidShape("load", doc), "config file %s: top level must be an object", path)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	merged, err := merge(c.values, doc)
	if err != nil {
		return lenserr.Wrapf(err, "failed to merge config file %s", path)
	}
	c.values = merged
	c.logger.Info("config file loaded", "path", path)
	return nil
}

// LoadEnv loads configuration from environment variables with prefix.
// APP_DB_HOST with prefix APP becomes db.host.
func (c *Config) LoadEnv(prefix string) *Config {
	for _, env := range os.Environ() {
		parts := strings.SplitN(env, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key, value := parts[0], parts[1]
		if prefix != "" && !strings.HasPrefix(key, prefix+"_") {
			continue
		}
		// Convert ENV_VAR_NAME to env.var.name
		configKey := strings.ToLower(strings.ReplaceAll(
			strings.TrimPrefix(key, prefix+"_"), "_", "."))
		if err := c.Set(configKey, value); err != nil {
			c.logger.Warn("environment variable ignored", "variable", key, logging.Err(err))
		}
	}
	return c
}

// Set sets a configuration value, creating missing objects along the path.
func (c *Config) Set(key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	updated, err := lens.Put(WritePath(key), c.values, value)
	if err != nil {
		return lenserr.Wrapf(err, "failed to set %s", key)
	}
	c.values = updated
	c.logger.Debug("config value set", slog.Group("config", slog.Any(key, value)))
	return nil
}

// Get returns the first value at key, falling back to the defaults when the
// loaded values have none.
func (c *Config) Get(key string) (any, bool) {
	found := c.GetAll(key)
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// GetAll returns every value at key. Wildcard keys can match many.
func (c *Config) GetAll(key string) []any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	read := ReadPath(key)
	layered := lens.Either(lens.Seq(lens.At(0), read), lens.Seq(lens.At(1), read))
	found, err := lens.ToList(layered, lens.Tuple{c.values, c.defaults})
	if err != nil {
		c.logger.Debug("config lookup failed", "key", key, logging.Err(err))
		return nil
	}
	return found
}

// GetString returns a string configuration value.
func (c *Config) GetString(key string) string {
	v, _ := c.Get(key)
	return cast.ToString(v)
}

// GetInt returns an int configuration value.
func (c *Config) GetInt(key string) int {
	v, _ := c.Get(key)
	return cast.ToInt(v)
}

// GetBool returns a bool configuration value.
func (c *Config) GetBool(key string) bool {
	v, _ := c.Get(key)
	return cast.ToBool(v)
}

// GetFloat returns a float64 configuration value.
func (c *Config) GetFloat(key string) float64 {
	v, _ := c.Get(key)
	return cast.ToFloat64(v)
}

// GetDuration returns a duration configuration value. Strings are parsed
// with time.ParseDuration, numbers are nanoseconds.
func (c *Config) GetDuration(key string) time.Duration {
	v, _ := c.Get(key)
	return cast.ToDuration(v)
}

// GetStringSlice returns a string slice configuration value. A string is
// split on commas.
func (c *Config) GetStringSlice(key string) []string {
	v, ok := c.Get(key)
	if !ok {
		return nil
	}
	if s, ok := v.(string); ok {
		return strings.Split(s, ",")
	}
	return cast.ToStringSlice(lens.Plain(v))
}

// Lookup runs l against the merged configuration document.
func (c *Config) Lookup(l lens.Lens) ([]any, error) {
	doc, err := c.Document()
	if err != nil {
		return nil, err
	}
	return lens.ToList(l, doc)
}

// Update rewrites every value l focuses on in the loaded values. Defaults are
// never changed.
func (c *Config) Update(l lens.Lens, f func(any) any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	updated, err := lens.Map(l, c.values, f)
	if err != nil {
		return err
	}
	c.values = updated
	return nil
}

var structValidator = validator.New()

// Decode decodes the value at key into out with mapstructure. The value is
// read from the merged document, so nested defaults fill missing fields.
// Strings from the environment are converted to the field types. When out
// points to a struct, its validate tags are checked after decoding.
func (c *Config) Decode(key string, out any) error {
	doc, err := c.Document()
	if err != nil {
		return err
	}
	found, err := lens.ToList(ReadPath(key), doc)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		return &ValidationError{MissingKeys: []string{key}}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(lens.Plain(found[0])); err != nil {
		return lenserr.Wrapf(err, "failed to decode %s", key)
	}
	if err := validateStruct(out); err != nil {
		return lenserr.Wrapf(err, "invalid %s", key)
	}
	return nil
}

func validateStruct(out any) error {
	err := structValidator.Struct(out)
	var invalid *validator.InvalidValidationError
	if err == nil || errors.As(err, &invalid) {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fmt.Sprintf("field '%s' failed validation: %s (value: %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("validation errors: %s", strings.Join(messages, "; "))
}

// Validate checks that required keys are present.
func (c *Config) Validate(required ...string) error {
	var missing []string
	for _, key := range required {
		if _, ok := c.Get(key); !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{MissingKeys: missing}
	}
	return nil
}

// ValidationError represents configuration validation errors.
type ValidationError struct {
	MissingKeys []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required config keys: %s", strings.Join(e.MissingKeys, ", "))
}

// Document returns the defaults with the loaded values merged over them.
func (c *Config) Document() (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return merge(c.defaults, c.values)
}

// All returns the merged configuration as plain maps and slices.
func (c *Config) All() map[string]any {
	doc, err := c.Document()
	if err != nil {
		return map[string]any{}
	}
	all, _ := lens.Plain(doc).(map[string]any)
	return all
}
