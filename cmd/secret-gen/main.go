// Command secret-gen prints a freshly generated admin secret suitable
// for the API_SECRET environment variable, plus its SHA-256 hash for
// audit notes.
package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"

	"mercury-mail.backend/pkg/crypto"
)

func main() {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("failed to generate secret: %v", err)
	}

	secret := base64.RawURLEncoding.EncodeToString(buf)
	fmt.Printf("API_SECRET=%s\n", secret)
	fmt.Printf("sha256=%s\n", crypto.HashKey(secret))
}
