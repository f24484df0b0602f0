package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateQueryCacheKeyOrderInsensitive(t *testing.T) {
	a := GenerateQueryCacheKey("properties", map[string]string{"city": "Pune", "page": "2"})
	b := GenerateQueryCacheKey("properties", map[string]string{"page": "2", "city": "Pune"})
	assert.Equal(t, a, b)
}

func TestGenerateQueryCacheKeyDiffers(t *testing.T) {
	a := GenerateQueryCacheKey("properties", map[string]string{"city": "Pune"})
	b := GenerateQueryCacheKey("properties", map[string]string{"city": "Mumbai"})
	assert.NotEqual(t, a, b)
}

func TestCacheHelpersWithoutClient(t *testing.T) {
	// Redis is optional; with no client every read is a miss and writes
	// are dropped silently
	RedisClient = nil

	var dest int64
	hit, err := GetCached(context.Background(), "k", &dest)
	assert.NoError(t, err)
	assert.False(t, hit)

	assert.NoError(t, SetCached(context.Background(), "k", 1, time.Minute))
	assert.NoError(t, DeleteCached(context.Background(), "k"))
}
