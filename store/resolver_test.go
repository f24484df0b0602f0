package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFinder struct {
	legacy map[string]primitive.ObjectID
	calls  int
}

func (f *fakeFinder) FindIDByLegacy(ctx context.Context, legacyID string) (primitive.ObjectID, error) {
	f.calls++
	id, ok := f.legacy[legacyID]
	if !ok {
		return primitive.NilObjectID, ErrPropertyNotFound
	}
	return id, nil
}

func TestResolveCanonicalPassesThrough(t *testing.T) {
	finder := &fakeFinder{}
	resolver := NewResolver(finder)

	id, err := resolver.Resolve(context.Background(), "507f1f77bcf86cd799439011")

	assert.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", id.Hex())
	assert.Equal(t, 0, finder.calls, "canonical ids must not trigger a lookup")
}

func TestResolveCanonicalWinsOverLegacy(t *testing.T) {
	// 24 decimal digits are valid hex, so the canonical check must win
	// even though the string is also all-digits
	raw := "111111111111111111111111"
	finder := &fakeFinder{legacy: map[string]primitive.ObjectID{raw: primitive.NewObjectID()}}
	resolver := NewResolver(finder)

	id, err := resolver.Resolve(context.Background(), raw)

	assert.NoError(t, err)
	assert.Equal(t, raw, id.Hex())
	assert.Equal(t, 0, finder.calls)
}

func TestResolveLegacyHit(t *testing.T) {
	canonical := primitive.NewObjectID()
	finder := &fakeFinder{legacy: map[string]primitive.ObjectID{"1749545967172": canonical}}
	resolver := NewResolver(finder)

	id, err := resolver.Resolve(context.Background(), "1749545967172")

	assert.NoError(t, err)
	assert.Equal(t, canonical, id)
	assert.Equal(t, 1, finder.calls)
}

func TestResolveLegacyMiss(t *testing.T) {
	finder := &fakeFinder{}
	resolver := NewResolver(finder)

	_, err := resolver.Resolve(context.Background(), "42")

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestResolveMalformed(t *testing.T) {
	finder := &fakeFinder{}
	resolver := NewResolver(finder)

	for _, raw := range []string{"abc123", "", "PROP1749", "12a34", "507f1f77bcf86cd79943901"} {
		_, err := resolver.Resolve(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidPropertyID, "raw=%q", raw)
	}
	assert.Equal(t, 0, finder.calls, "malformed ids must not trigger a lookup")
}
