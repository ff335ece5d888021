package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Format is a config file syntax.
type Format int

// The supported formats.
const (
	FormatTOML Format = iota
	FormatYAML
)

const (
	errMsgInvalidConfigFile = "config: Failed to load config file"
	errMsgFileError         = "config: Failed to write config file"
)

var (
	// ErrUnknownFormat is returned for a file extension that is neither toml
	// nor yaml.
	ErrUnknownFormat = errors.New("config: unknown file format")
)

// FormatFromPath decides the format from a file extension.
func FormatFromPath(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".toml", ".conf":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "file: %s", filename)
}

// Load reads a config file and applies the defaults. The format is decided
// by the file extension.
func Load(filename string) (*Config, error) {
	format, err := FormatFromPath(filename)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, errMsgInvalidConfigFile)
	}
	defer file.Close()

	return Decode(file, format)
}

// Decode reads a config and applies the defaults.
func Decode(reader io.Reader, format Format) (*Config, error) {
	c := &Config{}

	var err error
	switch format {
	case FormatTOML:
		_, err = toml.DecodeReader(reader, c)
	case FormatYAML:
		err = yaml.NewDecoder(reader).Decode(c)
		if err == io.EOF {
			err = nil
		}
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return nil, errors.Wrap(err, errMsgInvalidConfigFile)
	}

	c.SetDefaults()
	return c, nil
}

// Encode writes the config out to a writer.
func (c *Config) Encode(writer io.Writer, format Format) error {
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(writer).Encode(c)
	case FormatYAML:
		enc := yaml.NewEncoder(writer)
		if err = enc.Encode(c); err == nil {
			err = enc.Close()
		}
	default:
		err = ErrUnknownFormat
	}
	if err != nil {
		return errors.Wrap(err, errMsgFileError)
	}
	return nil
}

// Save writes the config to a file, the format is decided by the file
// extension.
func (c *Config) Save(filename string) error {
	format, err := FormatFromPath(filename)
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, errMsgFileError)
	}
	defer file.Close()

	return c.Encode(file, format)
}
