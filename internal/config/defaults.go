package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Addr:          ":5000",
		StaticDir:     "frontend",
		ModelsDir:     "models",
		DataDir:       "data",
		StartupPolicy: "degraded",
		Training: TrainingConfig{
			SampleSize:   50000,
			Seed:         42,
			Rounds:       60,
			LearningRate: 0.1,
			MaxDepth:     3,
			MinLeaf:      5,
		},
		Chat: ChatConfig{
			Model:          "llama-3.1-8b-instant",
			BaseURL:        "https://api.groq.com/openai/v1",
			TimeoutSeconds: 30,
			RatePerMinute:  30,
		},
		Log:          LogConfig{Level: "info", Format: "json"},
		MaxBodyBytes: 1 << 20,
	}
}

// Merge overlays the non-zero fields of o onto c.
func (c Config) Merge(o Config) Config {
	str := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	num := func(dst *int, v int) {
		if v != 0 {
			*dst = v
		}
	}
	str(&c.Addr, o.Addr)
	str(&c.StaticDir, o.StaticDir)
	str(&c.ModelsDir, o.ModelsDir)
	str(&c.DataDir, o.DataDir)
	str(&c.StartupPolicy, o.StartupPolicy)
	str(&c.Artifacts.Forecaster, o.Artifacts.Forecaster)
	str(&c.Artifacts.Regressor, o.Artifacts.Regressor)
	str(&c.Artifacts.Classifier, o.Artifacts.Classifier)

	num(&c.Training.SampleSize, o.Training.SampleSize)
	num(&c.Training.Rounds, o.Training.Rounds)
	num(&c.Training.MaxDepth, o.Training.MaxDepth)
	num(&c.Training.MinLeaf, o.Training.MinLeaf)
	if o.Training.Seed != 0 {
		c.Training.Seed = o.Training.Seed
	}
	if o.Training.LearningRate != 0 {
		c.Training.LearningRate = o.Training.LearningRate
	}

	str(&c.Chat.APIKey, o.Chat.APIKey)
	str(&c.Chat.Model, o.Chat.Model)
	str(&c.Chat.BaseURL, o.Chat.BaseURL)
	num(&c.Chat.TimeoutSeconds, o.Chat.TimeoutSeconds)
	num(&c.Chat.RatePerMinute, o.Chat.RatePerMinute)

	str(&c.Log.Level, o.Log.Level)
	str(&c.Log.Format, o.Log.Format)
	str(&c.Log.File, o.Log.File)

	if o.CORS.Enabled {
		c.CORS.Enabled = true
	}
	if len(o.CORS.Origins) > 0 {
		c.CORS.Origins = o.CORS.Origins
	}
	if len(o.CORS.Methods) > 0 {
		c.CORS.Methods = o.CORS.Methods
	}
	if len(o.CORS.Headers) > 0 {
		c.CORS.Headers = o.CORS.Headers
	}
	if o.MaxBodyBytes != 0 {
		c.MaxBodyBytes = o.MaxBodyBytes
	}
	return c
}

// Environment variables read by ApplyEnv.
const (
	EnvGroqAPIKey = "GROQ_API_KEY"
	EnvGroqModel  = "GROQ_MODEL"
	EnvAddr       = "FINPLAN_ADDR"
	EnvModelsDir  = "FINPLAN_MODELS_DIR"
	EnvDataDir    = "FINPLAN_DATA_DIR"
	EnvStaticDir  = "FINPLAN_STATIC_DIR"
	EnvLogLevel   = "FINPLAN_LOG_LEVEL"
	EnvPolicy     = "FINPLAN_STARTUP_POLICY"
	EnvSampleSize = "FINPLAN_SAMPLE_SIZE"
)

// ApplyEnv overlays values from the process environment.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(&c.Chat.APIKey, EnvGroqAPIKey)
	set(&c.Chat.Model, EnvGroqModel)
	set(&c.Addr, EnvAddr)
	set(&c.ModelsDir, EnvModelsDir)
	set(&c.DataDir, EnvDataDir)
	set(&c.StaticDir, EnvStaticDir)
	set(&c.Log.Level, EnvLogLevel)
	set(&c.StartupPolicy, EnvPolicy)
	if v := os.Getenv(EnvSampleSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Training.SampleSize = n
		}
	}
}

// LoadDotEnv loads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing default ".env" is not
// an error; a missing explicit path is.
func LoadDotEnv(path string) error {
	explicit := path != ""
	if !explicit {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
