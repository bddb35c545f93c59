package utils_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sameersharma62616/edyucationn/utils"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 32)
	enc, err := utils.Encrypt([]byte("smtp-secret"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if !strings.HasPrefix(enc, "enc:") {
		t.Fatalf("encrypted value %q missing enc: prefix", enc)
	}
	if strings.Contains(enc, "smtp-secret") {
		t.Fatal("plaintext visible in encrypted value")
	}
	plain, err := utils.Decrypt(enc, key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "smtp-secret" {
		t.Fatalf("round trip = %q, want %q", plain, "smtp-secret")
	}
}

func TestDecryptWrongKey(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 32)
	other := bytes.Repeat([]byte("x"), 32)
	enc, err := utils.Encrypt([]byte("smtp-secret"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if _, err := utils.Decrypt(enc, other); err == nil {
		t.Fatal("decrypt with the wrong key succeeded")
	}
}

func TestDecryptLegacyPlaintextPassthrough(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 32)
	plain, err := utils.Decrypt("stored-before-encryption", key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if plain != "stored-before-encryption" {
		t.Fatalf("passthrough = %q, want input unchanged", plain)
	}
}

func TestShortKeyRejected(t *testing.T) {
	if _, err := utils.Encrypt([]byte("x"), []byte("short")); err == nil {
		t.Fatal("encrypt accepted a short key")
	}
	if _, err := utils.Decrypt("enc:abc", []byte("short")); err == nil {
		t.Fatal("decrypt accepted a short key")
	}
}

func TestEncryptUniqueNonces(t *testing.T) {
	key := bytes.Repeat([]byte("k"), 32)
	a, err := utils.Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := utils.Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Fatal("two encryptions of the same input produced identical output")
	}
}
