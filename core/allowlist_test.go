package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowlistContainsIsCaseInsensitive(t *testing.T) {
	allowlist := NewAllowlist([]string{"0xabcdef0123456789abcdef0123456789abcd1234"})

	assert.True(t, allowlist.Contains("0xabcdef0123456789abcdef0123456789abcd1234"))
	assert.True(t, allowlist.Contains("0xABCDEF0123456789ABCDEF0123456789ABCD1234"))
	assert.True(t, allowlist.Contains("0xAbCdEf0123456789aBcDeF0123456789AbCd1234"))
	assert.False(t, allowlist.Contains("0xabcdef0123456789abcdef0123456789abcd1235"))
	assert.False(t, allowlist.Contains(""))
}

func TestAllowlistNormalizesEntries(t *testing.T) {
	// Entries written with checksum casing still match lowercase candidates.
	allowlist := NewAllowlist([]string{"0xABCDEF0123456789ABCDEF0123456789ABCD1234"})

	assert.True(t, allowlist.Contains("0xabcdef0123456789abcdef0123456789abcd1234"))
}

func TestParseAllowlist(t *testing.T) {
	allowlist := ParseAllowlist("0xaaa, 0xBBB ,,0xccc")

	assert.Equal(t, 3, allowlist.Len())
	assert.True(t, allowlist.Contains("0xAAA"))
	assert.True(t, allowlist.Contains("0xbbb"))
	assert.True(t, allowlist.Contains("0xCCC"))
}

func TestParseAllowlistEmpty(t *testing.T) {
	assert.Equal(t, 0, ParseAllowlist("").Len())
	assert.Equal(t, 0, ParseAllowlist(" , ,").Len())
}
