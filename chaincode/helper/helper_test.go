package helper_test

import (
	"encoding/base64"
	"testing"

	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/mocks"

	"github.com/stretchr/testify/require"
)

func TestAddressShapes(t *testing.T) {
	t.Parallel()
	require.True(t, helper.IsUserAddress("0b87970433b22494faff1cc7a819e71bddc7880c"))
	require.False(t, helper.IsUserAddress("0b87970433b22494faff1cc7a819e71bddc7880"))   // 39 chars
	require.False(t, helper.IsUserAddress("0b87970433b22494faff1cc7a819e71bddc7880cz")) // non-hex
	require.False(t, helper.IsUserAddress("klp-aabbcc-cc"))

	require.True(t, helper.IsContractAddress("klp-aabbcc-cc"))
	require.False(t, helper.IsContractAddress("klp-xyz-cc"))
	require.False(t, helper.IsContractAddress("aabbcc"))

	require.True(t, helper.IsZeroAddress("0000000000000000000000000000000000000000"))
	require.False(t, helper.IsZeroAddress("0b87970433b22494faff1cc7a819e71bddc7880c"))

	require.True(t, helper.IsValidAddress("klp-aabbcc-cc"))
	require.True(t, helper.IsValidAddress("0b87970433b22494faff1cc7a819e71bddc7880c"))
	require.False(t, helper.IsValidAddress("nope"))
}

func TestFindContractAddress(t *testing.T) {
	t.Parallel()
	header := "binaryjunk klp-6b616c70616373-cc morejunk"
	require.Equal(t, "klp-6b616c70616373-cc", helper.FindContractAddress(header))
	require.Empty(t, helper.FindContractAddress("no address here"))
}

func TestFilterPrintableASCII(t *testing.T) {
	t.Parallel()
	require.Equal(t, "klp-ab-cc", helper.FilterPrintableASCII("\x00\x01klp-ab-cc\n\x02"))
}

func TestGetUserId(t *testing.T) {
	t.Parallel()
	ctx := &mocks.TransactionContext{}
	identity := &mocks.ClientIdentity{}
	address := "0b87970433b22494faff1cc7a819e71bddc7880c"
	identity.GetIDReturns(base64.StdEncoding.EncodeToString([]byte("x509::CN="+address+",O=Org,C=IN")), nil)
	ctx.GetClientIdentityReturns(identity)

	got, err := helper.GetUserId(ctx)
	require.NoError(t, err)
	require.Equal(t, address, got)

	identity.GetIDReturns("!!!not-base64!!!", nil)
	_, err = helper.GetUserId(ctx)
	require.Error(t, err)

	identity.GetIDReturns(base64.StdEncoding.EncodeToString([]byte("unexpected format")), nil)
	_, err = helper.GetUserId(ctx)
	require.Error(t, err)
}

func TestAmountParsing(t *testing.T) {
	t.Parallel()
	v, err := helper.ParsePositiveAmount("12345")
	require.NoError(t, err)
	require.Equal(t, "12345", v.String())

	for _, bad := range []string{"0", "-1", "1.5", "abc", ""} {
		_, err := helper.ParsePositiveAmount(bad)
		require.Error(t, err, bad)
	}

	z, err := helper.ParseNonNegativeAmount("0")
	require.NoError(t, err)
	require.Equal(t, "0", z.String())
	_, err = helper.ParseNonNegativeAmount("-1")
	require.Error(t, err)

	require.True(t, helper.IsAmountProper("0"))
	require.False(t, helper.IsAmountProper("-2"))
	require.False(t, helper.IsAmountProper("2e5"))
}

func TestCommitmentHash(t *testing.T) {
	t.Parallel()
	a := helper.CommitmentHash("native", "caller", "recipient", "5", "100")
	b := helper.CommitmentHash("native", "caller", "recipient", "5", "100")
	require.Equal(t, a, b)
	require.Len(t, a, 64)

	// Field boundaries matter: "ab","c" must not collide with "a","bc".
	require.NotEqual(t, helper.CommitmentHash("ab", "c"), helper.CommitmentHash("a", "bc"))
}
