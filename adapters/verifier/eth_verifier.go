package verifier

import (
	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/launchblock/cerberus/ports"
)

// PersonalSignVerifier verifies EIP-191 personal_sign signatures: the signed
// digest is keccak256("\x19Ethereum Signed Message:\n" + len(msg) + msg),
// which is what wallets produce for personal_sign requests.
type PersonalSignVerifier struct{}

// NewPersonalSignVerifier creates a new verifier.
func NewPersonalSignVerifier() ports.SignatureVerifier {
	return &PersonalSignVerifier{}
}

// Verify recovers the signing address from (message, signature) and compares
// it to the claimed address. Every failure mode resolves to false; the
// inputs are attacker controlled and must never skip the caller's
// authorization decision.
func (v *PersonalSignVerifier) Verify(address, message, signature string) bool {
	if !common.IsHexAddress(address) {
		return false
	}

	sig, err := hexutil.Decode(signature)
	if err != nil {
		return false
	}
	if len(sig) != crypto.SignatureLength {
		return false
	}

	// Wallets encode the recovery id as 27/28; go-ethereum expects 0/1.
	normalized := make([]byte, crypto.SignatureLength)
	copy(normalized, sig)
	if normalized[crypto.RecoveryIDOffset] >= 27 {
		normalized[crypto.RecoveryIDOffset] -= 27
	}
	if normalized[crypto.RecoveryIDOffset] > 1 {
		return false
	}

	pubKey, err := crypto.SigToPub(accounts.TextHash([]byte(message)), normalized)
	if err != nil {
		return false
	}

	// common.Address comparison is byte equality, so checksum casing in the
	// claimed address cannot matter.
	return crypto.PubkeyToAddress(*pubKey) == common.HexToAddress(address)
}
