// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockmanager/internal/platform/sec"
)

/*
TestHashPassword_Verify covers the hash/verify contract: a hash verifies its
own plain text, rejects any other, and two hashes of the same input differ
because of per-call salting.
*/
func TestHashPassword_Verify(t *testing.T) {
	first, err := sec.HashPassword("pw123")
	require.NoError(t, err)

	second, err := sec.HashPassword("pw123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "bcrypt salts every call")
	assert.True(t, sec.CheckPasswordHash("pw123", first))
	assert.True(t, sec.CheckPasswordHash("pw123", second))
	assert.False(t, sec.CheckPasswordHash("wrong", first))
}

/*
TestCheckPasswordHash_Malformed verifies that verification never panics or
errors on input that is not valid bcrypt output — it simply reports false.
*/
func TestCheckPasswordHash_Malformed(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty_hash", ""},
		{"plain_text_hash", "not-a-bcrypt-hash"},
		{"truncated_hash", "$2a$10$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("pw123", tt.hash))
		})
	}
}
