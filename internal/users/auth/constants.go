// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Authentication Constants

const (
	// InvalidCredentialsMessage is the single client-facing message for any
	// failed credential check. Unknown username and wrong password are
	// indistinguishable to prevent account enumeration.
	InvalidCredentialsMessage = "Invalid username or password"

	// RegisteredMessage confirms a successful account registration.
	RegisteredMessage = "User registered successfully"

	// TokenType is the scheme reported alongside issued access tokens.
	TokenType = "Bearer"

	// RefreshTokenPlaceholder is returned by the refresh endpoint until the
	// rotation flow ships.
	// TODO: replace with real rotation once refresh tokens are persisted.
	RefreshTokenPlaceholder = "refresh-token"
)
