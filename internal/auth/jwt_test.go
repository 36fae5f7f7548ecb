package auth

import "testing"

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "user-1", "Rafiq Ahmed", "rafiq@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user id 'user-1', got %q", claims.UserID)
	}
	if claims.Email != "rafiq@example.com" {
		t.Errorf("expected email 'rafiq@example.com', got %q", claims.Email)
	}
	if claims.Role != "user" {
		t.Errorf("expected role 'user', got %q", claims.Role)
	}
	if claims.ID == "" {
		t.Error("expected non-empty JTI")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-a", "user-1", "Test", "test@example.com", "user")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("secret-b", token); err == nil {
		t.Error("expected validation to fail with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not.a.token"); err == nil {
		t.Error("expected validation to fail for malformed token")
	}
}

func TestTokensHaveUniqueJTI(t *testing.T) {
	t1, _ := GenerateToken("s", "u", "n", "e@example.com", "user")
	t2, _ := GenerateToken("s", "u", "n", "e@example.com", "user")
	if t1 == t2 {
		t.Error("expected distinct tokens for identical inputs")
	}
}
