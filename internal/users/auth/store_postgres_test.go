// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/stockmanager/internal/platform/apperr"
)

/*
TestConflictForUniqueViolation verifies that a duplicate insert reports the
identity anchor it actually collided on: the username constraint yields the
username message, everything else yields the email message.
*/
func TestConflictForUniqueViolation(t *testing.T) {
	testCases := []struct {
		name        string
		constraint  string
		wantMessage string
	}{
		{
			name:        "duplicate_username",
			constraint:  "account_username_key",
			wantMessage: "Username is already taken",
		},
		{
			name:        "duplicate_email",
			constraint:  "account_email_key",
			wantMessage: "Email is already registered",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			violation := &pgconn.PgError{
				Code:           "23505",
				ConstraintName: testCase.constraint,
			}

			err := conflictForUniqueViolation(violation)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "CONFLICT", appError.Code)
			assert.Equal(t, testCase.wantMessage, appError.Message)
		})
	}
}
