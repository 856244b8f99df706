// Package config loads optional file-based configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BucketConfig names a storage bucket and the object path prefix used in it.
type BucketConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// StorageConfig represents upload configuration.
type StorageConfig struct {
	Storage struct {
		PostImages          BucketConfig `yaml:"post_images"`
		ProfilePictures     BucketConfig `yaml:"profile_pictures"`
		MaxUploadBytes      int64        `yaml:"max_upload_bytes"`
		AllowedContentTypes []string     `yaml:"allowed_content_types"`
	} `yaml:"storage"`
}

// DefaultStorageConfig returns the buckets and limits used when no file is configured.
func DefaultStorageConfig() *StorageConfig {
	cfg := &StorageConfig{}
	cfg.Storage.PostImages = BucketConfig{Bucket: "my-personal-blog", Prefix: "posts"}
	cfg.Storage.ProfilePictures = BucketConfig{Bucket: "user-profile-pictures", Prefix: "profiles"}
	cfg.Storage.MaxUploadBytes = 5 << 20
	cfg.Storage.AllowedContentTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	return cfg
}

// LoadStorageConfig loads storage configuration from a YAML file.
// Fields missing from the file keep their defaults. An empty path returns the defaults.
func LoadStorageConfig(path string) (*StorageConfig, error) {
	cfg := DefaultStorageConfig()
	if path == "" {
		return cfg, nil
	}

	// #nosec G304 -- path comes from STORAGE_CONFIG_PATH, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateStorageConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateStorageConfig(cfg *StorageConfig) error {
	for name, b := range map[string]BucketConfig{
		"post_images":      cfg.Storage.PostImages,
		"profile_pictures": cfg.Storage.ProfilePictures,
	} {
		if strings.TrimSpace(b.Bucket) == "" {
			return fmt.Errorf("%s.bucket is required", name)
		}
		if strings.Contains(b.Bucket, "/") {
			return fmt.Errorf("%s.bucket must not contain '/'", name)
		}
	}

	if cfg.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	if len(cfg.Storage.AllowedContentTypes) == 0 {
		return fmt.Errorf("allowed_content_types must not be empty")
	}

	return nil
}

// IsAllowedContentType reports whether uploads of contentType are accepted.
// Parameters such as "; charset=" are ignored.
func (c *StorageConfig) IsAllowedContentType(contentType string) bool {
	mediaType, _, _ := strings.Cut(contentType, ";")
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	for _, allowed := range c.Storage.AllowedContentTypes {
		if strings.EqualFold(allowed, mediaType) {
			return true
		}
	}
	return false
}
