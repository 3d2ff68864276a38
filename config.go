package client

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Config identifies the remote project and the collections this client
// addresses. All fields are required; the backend assigns the ids when the
// project is provisioned.
type Config struct {
	// Endpoint is the backend API base URL, e.g. "https://cloud.example.com/v1".
	Endpoint string `envconfig:"ENDPOINT"`
	// ProjectID scopes every call to one project.
	ProjectID string `envconfig:"PROJECT_ID"`
	// DatabaseID is the document database holding all three collections.
	DatabaseID string `envconfig:"DATABASE_ID"`

	UserCollectionID  string `envconfig:"USER_COLLECTION_ID"`
	VideoCollectionID string `envconfig:"VIDEO_COLLECTION_ID"`
	SavesCollectionID string `envconfig:"SAVES_COLLECTION_ID"`

	// StorageBucketID is the blob bucket for thumbnails and videos.
	StorageBucketID string `envconfig:"STORAGE_BUCKET_ID"`
}

// LoadConfigFromEnv reads configuration from ASTRA_* environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := envconfig.Process("astra", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every required field is set and the endpoint parses.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("config: endpoint is required")
	}
	if _, err := url.Parse(c.Endpoint); err != nil {
		return fmt.Errorf("config: invalid endpoint: %w", err)
	}
	required := []struct{ name, val string }{
		{"project id", c.ProjectID},
		{"database id", c.DatabaseID},
		{"user collection id", c.UserCollectionID},
		{"video collection id", c.VideoCollectionID},
		{"saves collection id", c.SavesCollectionID},
		{"storage bucket id", c.StorageBucketID},
	}
	for _, f := range required {
		if f.val == "" {
			return fmt.Errorf("config: %s is required", f.name)
		}
	}
	return nil
}

// baseURL returns the endpoint without a trailing slash so bindings can join
// paths with a plain "/".
func (c Config) baseURL() string {
	return strings.TrimRight(c.Endpoint, "/")
}
