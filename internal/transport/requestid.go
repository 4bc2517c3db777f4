package transport

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"sync/atomic"
	"time"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDLength = 16 // 16 bytes = 32 hex chars
)

var requestIDFallbackCounter atomic.Uint64

// newRequestID produces a random hex string of requestIDLength*2 characters.
// Every outbound request carries one so client logs can be correlated with
// server-side traces.
func newRequestID() string {
	b := make([]byte, requestIDLength)
	_, err := rand.Read(b)
	if err != nil {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], requestIDFallbackCounter.Add(1))
		return hex.EncodeToString(b)
	}
	return hex.EncodeToString(b)
}
