// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stockmanager/internal/platform/ctxutil"
	"github.com/taibuivan/stockmanager/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies logger injection and the default fallback.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()

	// 1. Without injection, the default logger is returned
	assert.NotNil(t, ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve the exact instance
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Identity verifies that the authenticated principal round-trips
through the context and that anonymous contexts yield nil.
*/
func TestContext_Identity(t *testing.T) {
	ctx := context.Background()

	// 1. Anonymous context
	assert.Nil(t, ctxutil.GetIdentity(ctx))

	// 2. Inject and retrieve
	identity := &sec.Identity{Username: "alice", Authorities: []string{"ROLE_USER"}}
	ctx = ctxutil.WithIdentity(ctx, identity)
	assert.Same(t, identity, ctxutil.GetIdentity(ctx))
}
