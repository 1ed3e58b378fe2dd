// Package config loads the camera configuration that drives frame rotation.
//
// The configuration is a small YAML document:
//
//	camera:
//	  width: 640
//	  height: 480
//	  pixel_format: yuv420p
//	  rotate: 90
//	log_level: info
//
// Only the capture geometry and log level are validated here. The rotation
// angle and pixel format are passed through untouched; the rotate package
// decides whether they can be honored and disables rotation if not.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/opd-ai/toxrotate/rotate"
)

// DimensionAlignment is the multiple capture dimensions must be aligned to.
const DimensionAlignment = 16

var (
	// ErrInvalidDimensions indicates capture dimensions that are not positive
	// multiples of DimensionAlignment.
	ErrInvalidDimensions = errors.New("invalid capture dimensions")

	// ErrInvalidLogLevel indicates an unparseable log level.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the full configuration document.
type Config struct {
	Camera   Camera `yaml:"camera"`
	LogLevel string `yaml:"log_level"`
}

// Camera describes the capture device.
type Camera struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Format is a pixel format name, see ParsePixelFormat.
	Format string `yaml:"pixel_format"`
	// Rotate is the requested clockwise rotation in degrees.
	Rotate int `yaml:"rotate"`
}

// Defaults returns a Config for an unrotated VGA Planar420 camera.
func Defaults() Config {
	return Config{
		Camera: Camera{
			Width:  640,
			Height: 480,
			Format: "yuv420p",
			Rotate: 0,
		},
		LogLevel: "info",
	}
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Load",
		"path":         path,
		"width":        cfg.Camera.Width,
		"height":       cfg.Camera.Height,
		"pixel_format": cfg.Camera.Format,
		"rotate":       cfg.Camera.Rotate,
	}).Info("Configuration loaded")

	return cfg, nil
}

// Parse decodes a YAML document on top of Defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the capture geometry and log level.
func (c *Config) Validate() error {
	if err := validateDimension("width", c.Camera.Width); err != nil {
		return err
	}
	if err := validateDimension("height", c.Camera.Height); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

func validateDimension(name string, v int) error {
	if v <= 0 || v%DimensionAlignment != 0 {
		return fmt.Errorf("%w: %s %d must be a positive multiple of %d",
			ErrInvalidDimensions, name, v, DimensionAlignment)
	}
	return nil
}

// ApplyLogLevel sets the logrus level from the configuration.
func (c *Config) ApplyLogLevel() error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	logrus.SetLevel(level)
	return nil
}

// PixelFormat returns the camera's pixel format identifier.
func (c Camera) PixelFormat() rotate.PixelFormat {
	return ParsePixelFormat(c.Format)
}

// ParsePixelFormat maps a format name to its identifier. Names are case
// insensitive. Unrecognized names map to rotate.FormatUnknown.
func ParsePixelFormat(name string) rotate.PixelFormat {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "grey", "gray", "greyscale", "grayscale", "y8":
		return rotate.FormatGreyscale
	case "yuv420p", "i420", "yu12", "planar420":
		return rotate.FormatPlanar420
	case "rgb24":
		return rotate.FormatRGB24
	case "yuyv", "yuv422":
		return rotate.FormatYUYV
	case "mjpeg", "mjpg":
		return rotate.FormatMJPEG
	default:
		return rotate.FormatUnknown
	}
}
