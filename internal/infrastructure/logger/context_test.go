package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	logger, err := New(DefaultConfig())
	assert.NoError(t, err)

	ctx := WithContext(context.Background(), logger)
	got := FromContext(ctx)
	assert.Equal(t, logger, got)
}

func TestFromContextMissing(t *testing.T) {
	got := FromContext(context.Background())
	assert.NotNil(t, got, "missing logger falls back to a no-op")
}

func TestWithRequestID(t *testing.T) {
	logger, err := New(DefaultConfig())
	assert.NoError(t, err)

	ctx, enriched := WithRequestID(context.Background(), logger, "req-42")
	assert.Equal(t, "req-42", GetRequestID(ctx))
	assert.NotNil(t, enriched)
	assert.Equal(t, enriched, FromContext(ctx))
}

func TestGetRequestIDMissing(t *testing.T) {
	assert.Equal(t, "", GetRequestID(context.Background()))
}
