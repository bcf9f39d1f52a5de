package s3_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"patitas/config"
	otelMocks "patitas/infras/otel/mocks"
	"patitas/infras/s3"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.External.S3.Endpoint = "https://storage.internal:9000"
	cfg.External.S3.AccessKey = "test-access"
	cfg.External.S3.SecretKey = "test-secret"
	cfg.External.S3.BucketName = "patitas"
	cfg.External.S3.BaseURL = "cdn.example.com"

	return cfg
}

func TestS3_GetObjectNameFromURL(t *testing.T) {
	svc := s3.New(newTestConfig(), otelMocks.NewOtel())

	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "public base url",
			url:      "cdn.example.com/patitas/pets/photo.jpg",
			expected: "pets/photo.jpg",
		},
		{
			name:     "api endpoint url",
			url:      "https://storage.internal:9000/patitas/pets/photo.jpg",
			expected: "pets/photo.jpg",
		},
		{
			name:     "foreign url",
			url:      "https://elsewhere.example.com/patitas/pets/photo.jpg",
			expected: "",
		},
		{
			name:     "empty url",
			url:      "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, svc.GetObjectNameFromURL("patitas", tt.url))
		})
	}
}
