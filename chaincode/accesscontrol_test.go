package chaincode_test

import (
	"testing"

	"swift-contract/chaincode/constants"

	"github.com/stretchr/testify/require"
)

func TestGrantRole(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))
	roles, err := h.contract.RolesOf(h.ctx, admin2)
	require.NoError(t, err)
	require.Equal(t, constants.RoleAdmin, roles)

	require.Error(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin)) // already holds a role
	require.Error(t, h.contract.GrantRole(h.ctx, user1, "Superuser"))
	require.Error(t, h.contract.GrantRole(h.ctx, fungibleToken, constants.RoleAdmin)) // not a user address
	require.Error(t, h.contract.GrantRole(h.ctx, "bogus", constants.RoleAdmin))
	require.Error(t, h.contract.GrantRole(h.ctx, "0000000000000000000000000000000000000000", constants.RoleAdmin))

	// Admins grant moderators, but not other admins.
	h.setUser(admin2)
	require.Error(t, h.contract.GrantRole(h.ctx, user1, constants.RoleAdmin))
	require.NoError(t, h.contract.GrantRole(h.ctx, moderator1, constants.RoleModerator))

	// Moderators grant nothing.
	h.setUser(moderator1)
	require.Error(t, h.contract.GrantRole(h.ctx, user1, constants.RoleModerator))

	// Blacklisted accounts cannot take a role.
	h.setUser(deployer)
	require.NoError(t, h.contract.AddToBlacklist(h.ctx, user2))
	require.Error(t, h.contract.GrantRole(h.ctx, user2, constants.RoleModerator))
}

func TestAdminCeiling(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	// The deployer already holds one of the three admin slots.
	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))
	require.NoError(t, h.contract.GrantRole(h.ctx, user1, constants.RoleAdmin))
	require.Error(t, h.contract.GrantRole(h.ctx, user2, constants.RoleAdmin))

	// Freeing a slot lets the grant through.
	require.NoError(t, h.contract.RevokeRole(h.ctx, user1))
	require.NoError(t, h.contract.GrantRole(h.ctx, user2, constants.RoleAdmin))
}

func TestModeratorCeiling(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	accounts := []string{
		"1000000000000000000000000000000000000001",
		"1000000000000000000000000000000000000002",
		"1000000000000000000000000000000000000003",
		"1000000000000000000000000000000000000004",
		"1000000000000000000000000000000000000005",
		"1000000000000000000000000000000000000006",
		"1000000000000000000000000000000000000007",
		"1000000000000000000000000000000000000008",
		"1000000000000000000000000000000000000009",
		"100000000000000000000000000000000000000a",
	}
	for _, account := range accounts {
		require.NoError(t, h.contract.GrantRole(h.ctx, account, constants.RoleModerator))
	}
	require.Error(t, h.contract.GrantRole(h.ctx, user1, constants.RoleModerator))
}

func TestRevokeRole(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)
	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))
	require.NoError(t, h.contract.GrantRole(h.ctx, moderator1, constants.RoleModerator))

	require.Error(t, h.contract.RevokeRole(h.ctx, user1)) // no role held

	// Moderator revocation is open to any admin.
	h.setUser(admin2)
	require.NoError(t, h.contract.RevokeRole(h.ctx, moderator1))
	roles, err := h.contract.RolesOf(h.ctx, moderator1)
	require.NoError(t, err)
	require.Empty(t, roles)

	// Admin revocation is owner-only.
	require.Error(t, h.contract.RevokeRole(h.ctx, admin2))

	h.setUser(deployer)
	require.NoError(t, h.contract.RevokeRole(h.ctx, admin2))
}

func TestRevokeLastAdmin(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	// The deployer is the only admin; removing it would empty the slot.
	require.Error(t, h.contract.RevokeRole(h.ctx, deployer))
}

func TestOwnershipHandoff(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	require.Error(t, h.contract.TransferOwnership(h.ctx, deployer)) // already the owner
	require.Error(t, h.contract.TransferOwnership(h.ctx, "bogus"))

	require.NoError(t, h.contract.TransferOwnership(h.ctx, user1))
	pending, err := h.contract.PendingOwner(h.ctx)
	require.NoError(t, err)
	require.Equal(t, user1, pending)

	// Owner is unchanged until the pending owner accepts.
	owner, err := h.contract.Owner(h.ctx)
	require.NoError(t, err)
	require.Equal(t, deployer, owner)

	// Only the pending owner may accept.
	h.setUser(user2)
	require.Error(t, h.contract.AcceptOwnership(h.ctx))

	h.setUser(user1)
	require.NoError(t, h.contract.AcceptOwnership(h.ctx))
	owner, err = h.contract.Owner(h.ctx)
	require.NoError(t, err)
	require.Equal(t, user1, owner)

	pending, err = h.contract.PendingOwner(h.ctx)
	require.NoError(t, err)
	require.Empty(t, pending)

	// The previous owner lost the root role but keeps the admin one.
	h.setUser(deployer)
	require.Error(t, h.contract.SetRateLimit(h.ctx, "60"))
	require.Error(t, h.contract.RenounceOwnership(h.ctx))

	// A roleless account cannot start a handoff.
	h.setUser(user3)
	require.Error(t, h.contract.TransferOwnership(h.ctx, user2))
}

func TestTransferOwnershipOverwritesPending(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	require.NoError(t, h.contract.TransferOwnership(h.ctx, user1))
	require.NoError(t, h.contract.TransferOwnership(h.ctx, user2))

	h.setUser(user1)
	require.Error(t, h.contract.AcceptOwnership(h.ctx))

	h.setUser(user2)
	require.NoError(t, h.contract.AcceptOwnership(h.ctx))
}

func TestRenounceOwnership(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	// A pending handoff blocks the renounce.
	require.NoError(t, h.contract.TransferOwnership(h.ctx, user1))
	require.Error(t, h.contract.RenounceOwnership(h.ctx))

	h.setUser(user1)
	require.NoError(t, h.contract.AcceptOwnership(h.ctx))

	require.NoError(t, h.contract.RenounceOwnership(h.ctx))
	owner, err := h.contract.Owner(h.ctx)
	require.NoError(t, err)
	require.Empty(t, owner)

	require.Error(t, h.contract.RenounceOwnership(h.ctx))

	// Not even an admin can reinstate a renounced ownership.
	h.setUser(deployer)
	require.Error(t, h.contract.TransferOwnership(h.ctx, user2))
	require.Equal(t, 1, h.eventCount(constants.EventOwnershipRenounced))
}
