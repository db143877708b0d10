package jwt

import (
	"errors"
	"testing"
)

const secret = "test-secret"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := GenerateAccessToken("4f1c6a0e-2b7d-4c39-9a55-7f3e9d2c8b10", "sara@example.com", secret, 15)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateAccessToken(tok, secret)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != "4f1c6a0e-2b7d-4c39-9a55-7f3e9d2c8b10" || claims.Email != "sara@example.com" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Issuer != issuer {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestValidateRejectsBadTokens(t *testing.T) {
	good, err := GenerateAccessToken("u1", "", secret, 15)
	if err != nil {
		t.Fatal(err)
	}
	expired, err := GenerateAccessToken("u1", "", secret, -1)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"wrong secret", good, "other", ErrTokenInvalid},
		{"garbage", "not-a-token", secret, ErrTokenInvalid},
		{"expired", expired, secret, ErrTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tt.token, tt.secret)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	tok, err := GenerateRefreshToken("u1", "tid-1", secret, 7)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateRefreshToken(tok, secret)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if claims.UserID != "u1" || claims.TokenID != "tid-1" {
		t.Errorf("claims = %+v", claims)
	}
}
