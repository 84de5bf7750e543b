package internal

import (
	"rice-lab/errors"
	"testing"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)

	req.Equal("data/Rice_MSC_Dataset_sample.csv", config.DatasetPath)
	req.Equal(0.1, config.LearningRate)
	req.Equal(1000, config.Epochs)
	req.Equal(0.8, config.TrainRatio)
	req.Nil(config.Seed)
	req.NoError(config.Validate())
}

func TestConfig_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("LEARNING_RATE", "0.05")
	t.Setenv("EPOCHS", "250")
	t.Setenv("SEED", "17")
	t.Setenv("SHUFFLE", "true")

	var config Config
	_, err := env.UnmarshalFromEnviron(&config)
	req.NoError(err)
	req.NoError(config.Validate())

	params := config.TrainingParams()
	req.Equal(0.05, params.LearningRate)
	req.Equal(250, params.Epochs)
	req.NotNil(params.Seed)
	req.Equal(int64(17), *params.Seed)
	req.True(params.Shuffle)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		DatasetPath:  "rice.csv",
		LearningRate: 0.1,
		Epochs:       1000,
		TrainRatio:   0.8,
		LogLevel:     "INFO",
	}

	tests := []struct {
		description string
		modify      func(c *Config)
		wantErr     bool
	}{
		{"Should accept the defaults", func(c *Config) {}, false},
		{"Should accept the lowest learning rate", func(c *Config) { c.LearningRate = 0.001 }, false},
		{"Should accept the highest epoch count", func(c *Config) { c.Epochs = 5000 }, false},
		{"Should reject a learning rate above 1", func(c *Config) { c.LearningRate = 1.5 }, true},
		{"Should reject a learning rate below 0.001", func(c *Config) { c.LearningRate = 0.0001 }, true},
		{"Should reject fewer than 100 epochs", func(c *Config) { c.Epochs = 99 }, true},
		{"Should reject more than 5000 epochs", func(c *Config) { c.Epochs = 5001 }, true},
		{"Should reject an unknown log level", func(c *Config) { c.LogLevel = "LOUD" }, true},
		{"Should reject a missing dataset", func(c *Config) { c.DatasetPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			req := require.New(t)
			c := base
			tt.modify(&c)
			err := c.Validate()
			req.Equal(tt.wantErr, err != nil, tt.description)
			if tt.wantErr {
				req.ErrorIs(err, errors.ErrInvalidParams)
			}
		})
	}
}
