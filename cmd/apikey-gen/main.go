// Command apikey-gen mints an API key outside the HTTP surface, for
// seeding a fresh deployment. It prints the plaintext (shown exactly
// once), the public prefix, and the SHA-256 hash to insert into the
// api_keys table.
package main

import (
	"fmt"
	"log"

	"mercury-mail.backend/pkg/crypto"
)

func main() {
	key, prefix, err := crypto.GenerateKey()
	if err != nil {
		log.Fatalf("failed to generate api key: %v", err)
	}

	fmt.Printf("key=%s\n", key)
	fmt.Printf("prefix=%s\n", prefix)
	fmt.Printf("key_hash=%s\n", crypto.HashKey(key))
}
