package osm2rail

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const envPrefix = "OSM2RAIL_"

// Config is configuration of railway segmentation pipeline
type Config struct {
	File          string   `yaml:"file"`
	RailwayValues []string `yaml:"railway_values"`
	Limit         int      `yaml:"limit"`
	Workers       int      `yaml:"workers"`
	Strict        bool     `yaml:"strict"`
	NodeTags      bool     `yaml:"node_tags"`
	Contract      bool     `yaml:"contract"`
	Output        struct {
		Prefix     string `yaml:"prefix"`
		Format     string `yaml:"format"`
		GeomFormat string `yaml:"geom_format"`
		Units      string `yaml:"units"`
	} `yaml:"output"`
}

// DefaultConfig returns configuration with defaults filled
func DefaultConfig() Config {
	cfg := Config{
		File:          "railways.osm.pbf",
		RailwayValues: defaultRailwayValues,
		Workers:       1,
		NodeTags:      true,
	}
	cfg.Output.Prefix = "segments"
	cfg.Output.Format = FORMAT_JSON
	cfg.Output.GeomFormat = GEOM_WKT
	cfg.Output.Units = "km"
	return cfg
}

// ReadConfig reads YAML file on top of defaults
func ReadConfig(fname string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(fname)
	if err != nil {
		return cfg, errors.Wrap(err, "Can't read config file")
	}
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "Can't parse config file '%s'", fname)
	}
	return cfg, nil
}

// LoadEnvFile loads variables from .env-like file into process environment. Missing file is not an error.
// Variables which are already set are not overridden
func LoadEnvFile(fname string) error {
	if _, err := os.Stat(fname); os.IsNotExist(err) {
		return nil
	}
	return errors.Wrapf(godotenv.Load(fname), "Can't load env file '%s'", fname)
}

// ApplyEnv overrides configuration with OSM2RAIL_* environment variables
func (cfg *Config) ApplyEnv() error {
	var err error
	cfg.File = getEnv("FILE", cfg.File)
	if values := getEnv("RAILWAY_VALUES", ""); values != "" {
		cfg.RailwayValues = strings.Split(values, ",")
	}
	cfg.Limit, err = getIntEnv("LIMIT", cfg.Limit)
	if err != nil {
		return err
	}
	cfg.Workers, err = getIntEnv("WORKERS", cfg.Workers)
	if err != nil {
		return err
	}
	cfg.Strict, err = getBoolEnv("STRICT", cfg.Strict)
	if err != nil {
		return err
	}
	cfg.NodeTags, err = getBoolEnv("NODE_TAGS", cfg.NodeTags)
	if err != nil {
		return err
	}
	cfg.Contract, err = getBoolEnv("CONTRACT", cfg.Contract)
	if err != nil {
		return err
	}
	cfg.Output.Prefix = getEnv("OUT", cfg.Output.Prefix)
	cfg.Output.Format = getEnv("FORMAT", cfg.Output.Format)
	cfg.Output.GeomFormat = getEnv("GEOMF", cfg.Output.GeomFormat)
	cfg.Output.Units = getEnv("UNITS", cfg.Output.Units)
	return nil
}

// Validate checks if configuration values are supported
func (cfg *Config) Validate() error {
	if cfg.File == "" {
		return errors.New("file is not provided")
	}
	if _, err := ParseUnits(cfg.Output.Units); err != nil {
		return err
	}
	switch strings.ToLower(cfg.Output.Format) {
	case FORMAT_JSON, FORMAT_CSV, FORMAT_GEOJSON:
	default:
		return errors.Wrapf(ErrUnknownFormat, "output format '%s'", cfg.Output.Format)
	}
	switch strings.ToLower(cfg.Output.GeomFormat) {
	case GEOM_WKT, GEOM_GEOJSON:
	default:
		return errors.Wrapf(ErrUnknownFormat, "geometry format '%s'", cfg.Output.GeomFormat)
	}
	if cfg.Workers < 1 {
		return errors.Errorf("workers should be positive, got %d", cfg.Workers)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, errors.Wrapf(err, "%s%s should be an integer", envPrefix, key)
	}
	return parsed, nil
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, errors.Wrapf(err, "%s%s should be a boolean", envPrefix, key)
	}
	return parsed, nil
}
