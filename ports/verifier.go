package ports

// SignatureVerifier checks that a signature over a message was produced by
// the private key behind the claimed address.
type SignatureVerifier interface {
	// Verify fails closed: malformed input, recovery failure, or an address
	// mismatch all yield false. It never panics on attacker-controlled input.
	Verify(address, message, signature string) bool
}
