package utils

import "testing"

func TestCreateAndValidateToken(t *testing.T) {
	token, err := CreateToken("65a000000000000000000001", "student", "secret")
	if err != nil {
		t.Fatalf("create token failed: %v", err)
	}

	claims, err := ValidateToken(token, "secret")
	if err != nil {
		t.Fatalf("validate token failed: %v", err)
	}
	if claims.UserID != "65a000000000000000000001" {
		t.Errorf("unexpected user id %q", claims.UserID)
	}
	if claims.Role != "student" {
		t.Errorf("unexpected role %q", claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := CreateToken("65a000000000000000000001", "student", "secret")
	if err != nil {
		t.Fatalf("create token failed: %v", err)
	}
	if _, err := ValidateToken(token, "other-secret"); err == nil {
		t.Fatal("token signed with a different secret must not validate")
	}
}
