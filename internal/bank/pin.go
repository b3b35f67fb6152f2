package bank

import (
	"encoding/base64"
	"fmt"
)

// EncodePIN obfuscates a PIN for storage using base64.
//
// This is a reversible encoding, NOT encryption or hashing: anyone holding the
// stored value can recover the PIN with DecodePIN. It exists so PINs are not
// stored as plain text in demo data and must not be relied on for security.
func EncodePIN(pin string) string {
	return base64.StdEncoding.EncodeToString([]byte(pin))
}

// DecodePIN reverses EncodePIN.
func DecodePIN(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding PIN: %w", err)
	}
	return string(raw), nil
}
