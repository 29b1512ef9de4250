// Package config gathers the settings of the diagram tool from an optional
// env file, the process environment and command line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvAssetsDir = "INFRADIAGRAM_ASSETS_DIR"
	EnvOutput    = "INFRADIAGRAM_OUTPUT"
	EnvFormat    = "INFRADIAGRAM_FORMAT"
	EnvRenderer  = "INFRADIAGRAM_RENDERER"
	EnvDirection = "INFRADIAGRAM_DIRECTION"
	EnvMode      = "INFRADIAGRAM_ENV"
)

const DefaultEnvFile = ".env"

type Config struct {
	AssetsDir string   `validate:"required"`
	Output    string   `validate:"required"`
	Formats   []string `validate:"required,min=1,dive,oneof=png jpg svg dot mermaid sketch excalidraw"`
	Renderer  string   `validate:"oneof=auto graphviz command"`
	Direction string   `validate:"oneof=LR TB RL BT"`
	Dev       bool
}

// Default matches the behavior of running the tool without any setup: icons
// from ./assets, a single diagram.png in the working directory.
func Default() Config {
	return Config{
		AssetsDir: "assets",
		Output:    "diagram",
		Formats:   []string{"png"},
		Renderer:  "auto",
		Direction: "LR",
	}
}

// LoadEnvFile loads variables from path without overriding ones already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading env file %s: %w", path, err)
	}
	return nil
}

// FromEnv applies environment overrides on top of Default.
func FromEnv() Config {
	c := Default()
	if v := os.Getenv(EnvAssetsDir); v != "" {
		c.AssetsDir = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Formats = SplitList(v)
	}
	if v := os.Getenv(EnvRenderer); v != "" {
		c.Renderer = v
	}
	if v := os.Getenv(EnvDirection); v != "" {
		c.Direction = v
	}
	c.Dev = os.Getenv(EnvMode) == "dev"
	return c
}

// Load reads envFile (if present) and then the environment. Overrides, such
// as command line flags, are applied last. The resolved config is returned
// even when it fails validation.
func Load(envFile string, overrides ...func(*Config)) (Config, error) {
	if err := LoadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	c := FromEnv()
	for _, o := range overrides {
		o(&c)
	}
	c.normalize()
	return c, c.Validate()
}

// normalize applies the same casing rules whatever the value came from.
func (c *Config) normalize() {
	c.Direction = strings.ToUpper(strings.TrimSpace(c.Direction))
	c.Renderer = strings.ToLower(strings.TrimSpace(c.Renderer))
	for i, f := range c.Formats {
		c.Formats[i] = strings.ToLower(strings.TrimSpace(f))
	}
}

var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: invalid value %q (%s)", fe.Namespace(), fmt.Sprint(fe.Value()), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// SplitList splits "png, svg" into ["png", "svg"].
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
