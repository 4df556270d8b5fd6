package verifier

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMessage = "Login to Launchblock Admin at 2024-01-01T00:00:00.000Z"

func TestVerifyPersonalSign(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)

	v := NewPersonalSignVerifier()

	// go-ethereum emits the recovery id as 0/1; wallets emit 27/28. Both
	// encodings must verify.
	assert.True(t, v.Verify(address, testMessage, hexutil.Encode(sig)))

	walletSig := make([]byte, len(sig))
	copy(walletSig, sig)
	walletSig[64] += 27
	assert.True(t, v.Verify(address, testMessage, hexutil.Encode(walletSig)))
}

func TestVerifyIsCaseInsensitiveOnAddress(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	checksummed := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)
	encoded := hexutil.Encode(sig)

	v := NewPersonalSignVerifier()

	assert.True(t, v.Verify(checksummed, testMessage, encoded))
	assert.True(t, v.Verify("0x"+checksummed[2:], testMessage, encoded))
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)

	v := NewPersonalSignVerifier()

	sig[10] ^= 0x01
	assert.False(t, v.Verify(address, testMessage, hexutil.Encode(sig)))
}

func TestVerifyRejectsWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	otherKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	otherAddress := crypto.PubkeyToAddress(otherKey.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)

	v := NewPersonalSignVerifier()

	assert.False(t, v.Verify(otherAddress, testMessage, hexutil.Encode(sig)))
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)

	v := NewPersonalSignVerifier()

	assert.False(t, v.Verify(address, testMessage+" tampered", hexutil.Encode(sig)))
}

func TestVerifyFailsClosedOnMalformedInput(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	v := NewPersonalSignVerifier()

	assert.False(t, v.Verify(address, testMessage, ""))
	assert.False(t, v.Verify(address, testMessage, "not-hex"))
	assert.False(t, v.Verify(address, testMessage, "0xdeadbeef"))
	assert.False(t, v.Verify(address, testMessage, "0x"+string(make([]byte, 130))))
	assert.False(t, v.Verify("not-an-address", testMessage, "0xdeadbeef"))
	assert.False(t, v.Verify("", testMessage, ""))
}

func TestVerifyRejectsBadRecoveryID(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(accounts.TextHash([]byte(testMessage)), key)
	require.NoError(t, err)

	v := NewPersonalSignVerifier()

	sig[64] = 5
	assert.False(t, v.Verify(address, testMessage, hexutil.Encode(sig)))
}
