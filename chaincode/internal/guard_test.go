package internal_test

import (
	"testing"

	"swift-contract/chaincode/internal"

	"github.com/stretchr/testify/require"
)

func TestNonReentrantGuard(t *testing.T) {
	t.Parallel()

	require.NoError(t, internal.EnterNonReentrant("tx-a"))
	require.Error(t, internal.EnterNonReentrant("tx-a")) // nested entry

	// Independent transactions do not contend.
	require.NoError(t, internal.EnterNonReentrant("tx-b"))
	internal.ExitNonReentrant("tx-b")

	internal.ExitNonReentrant("tx-a")
	require.NoError(t, internal.EnterNonReentrant("tx-a"))
	internal.ExitNonReentrant("tx-a")
}
