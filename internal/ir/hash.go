package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainProblem separates problem hashes from any other hash computed over
// canonical JSON. The version suffix allows the layout to change later.
const DomainProblem = "lazyreals/problem/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProblemHash returns a content address for p. Two problems with the same
// real, arguments, precision and limits hash equal regardless of how their
// source files were laid out. Description does not participate.
func ProblemHash(p Problem) (string, error) {
	data, err := MarshalCanonical(p.Canonical())
	if err != nil {
		return "", fmt.Errorf("marshal problem %q: %w", p.Name, err)
	}
	return hashWithDomain(DomainProblem, data), nil
}

// MustProblemHash is ProblemHash for callers that built p themselves.
func MustProblemHash(p Problem) string {
	h, err := ProblemHash(p)
	if err != nil {
		panic(err)
	}
	return h
}
