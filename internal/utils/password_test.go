package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("campfire-and-smores", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "campfire-and-smores" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "campfire-and-smores") {
		t.Fatal("correct password must verify")
	}
	if VerifyPassword(hash, "campfire-and-smore") {
		t.Fatal("wrong password must not verify")
	}
}

func TestVerifyPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	if VerifyPassword("not-a-bcrypt-hash", "anything") {
		t.Fatal("malformed hash must not verify")
	}
}
