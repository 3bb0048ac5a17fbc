package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	inputDirName = "input"

	defaultCacheTTL    = 30 * time.Minute
	defaultHTTPTimeout = 10 * time.Second
	defaultWorkerCount = 3
	defaultInstance    = "mastodon.social"
)

type (
	Config struct {
		BotApiKey        string
		Debug            bool
		DefaultInstance  string
		PreloadInstances []string
		CacheTTL         time.Duration
		HTTPTimeout      time.Duration
		WorkerCount      int
		Paths            Paths
	}
	Paths struct {
		Input string
	}
)

func NewConfig(cfgFolderPath string) (*Config, error) {
	const errMsg = "Config.NewConfig"

	c := &Config{
		DefaultInstance: defaultInstance,
		CacheTTL:        defaultCacheTTL,
		HTTPTimeout:     defaultHTTPTimeout,
		WorkerCount:     defaultWorkerCount,
		Paths: Paths{
			Input: inputDirName,
		},
	}

	envPath := filepath.Join(cfgFolderPath, "app.env")

	err := c.loadEnv(envPath)
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	err = c.validate()
	if err != nil {
		return nil, errors.Wrap(err, errMsg)
	}

	return c, nil
}

func (c *Config) loadEnv(filePath string) error {
	const errMsg = "loadEnv"

	err := godotenv.Load(filePath)
	if err != nil {
		return errors.Wrap(err, errMsg)
	}

	c.BotApiKey = os.Getenv("bot_api_key")
	c.Debug, _ = strconv.ParseBool(os.Getenv("debug"))

	if v := os.Getenv("default_instance"); v != "" {
		c.DefaultInstance = v
	}

	c.PreloadInstances = splitList(os.Getenv("preload_instances"))

	if v := os.Getenv("cache_ttl"); v != "" {
		c.CacheTTL, err = time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, errMsg+": cache_ttl")
		}
	}

	if v := os.Getenv("http_timeout"); v != "" {
		c.HTTPTimeout, err = time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, errMsg+": http_timeout")
		}
	}

	if v := os.Getenv("worker_count"); v != "" {
		c.WorkerCount, err = strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, errMsg+": worker_count")
		}
	}

	if v := os.Getenv("input_dir"); v != "" {
		c.Paths.Input = v
	}

	return nil
}

func (c *Config) validate() error {
	const errMsg = "validate"

	if c.BotApiKey == "" {
		return errors.Wrap(errors.New("bot_api_key is required"), errMsg)
	}

	if c.WorkerCount < 1 {
		return errors.Wrap(errors.New("worker_count must be positive"), errMsg)
	}

	if c.CacheTTL <= 0 {
		return errors.Wrap(errors.New("cache_ttl must be positive"), errMsg)
	}

	if c.HTTPTimeout <= 0 {
		return errors.Wrap(errors.New("http_timeout must be positive"), errMsg)
	}

	return nil
}

func splitList(s string) []string {
	var out []string

	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}

	return out
}
