// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// DemoSigningKey is the fixed placeholder key used outside production.
// Not secret, suitable only for demos and tests; production keys come
// from the secrets directory.
var DemoSigningKey = []byte("demo-signing-key-not-for-production")

// HashText returns the SHA-256 hex digest of text.
func HashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CanonicalJSON serializes v with deterministically sorted object keys, so
// identical logical content always produces identical bytes regardless of
// struct field order. It round-trips v through an untyped value because
// encoding/json sorts map keys but preserves struct field order.
func CanonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshaling value: %w", err)
	}
	var untyped any
	if err := json.Unmarshal(raw, &untyped); err != nil {
		return nil, fmt.Errorf("normalizing value: %w", err)
	}
	return json.Marshal(untyped)
}

// HashCanonical returns the SHA-256 hex digest of v's canonical JSON.
func HashCanonical(v any) (string, error) {
	data, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Sign computes the hex HMAC-SHA256 signature for an audit record. The
// signed message is the concatenation requestID + requestHash +
// responseHash + timestamp; this is the single canonical layout, binding
// the signature to the request identity and creation time as well as to
// the content digests.
func Sign(key []byte, requestID, requestHash, responseHash, timestamp string) string {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(requestID + requestHash + responseHash + timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}
