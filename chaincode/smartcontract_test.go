package chaincode_test

import (
	"testing"

	"swift-contract/chaincode/constants"

	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	t.Parallel()
	h := initialized(t)

	name, err := h.contract.Name(h.ctx)
	require.NoError(t, err)
	require.Equal(t, "TransferSWIFT", name)

	owner, err := h.contract.Owner(h.ctx)
	require.NoError(t, err)
	require.Equal(t, deployer, owner)

	roles, err := h.contract.RolesOf(h.ctx, deployer)
	require.NoError(t, err)
	require.Equal(t, "Owner,Admin", roles)

	balance, err := h.contract.BalanceOf(h.ctx, deployer)
	require.NoError(t, err)
	require.Equal(t, constants.InitialSupply, balance)

	fee, err := h.contract.TaxFee(h.ctx)
	require.NoError(t, err)
	require.Equal(t, constants.InitialTaxFee, fee)

	rate, err := h.contract.RateLimit(h.ctx)
	require.NoError(t, err)
	require.Equal(t, "30", rate)

	limit, err := h.contract.EffectiveRecipientLimit(h.ctx, user1)
	require.NoError(t, err)
	require.Equal(t, "15", limit)

	ok, err := h.contract.Initialize(h.ctx, "TransferSWIFT")
	require.Error(t, err)
	require.False(t, ok)
}

func TestSetTaxFee(t *testing.T) {
	t.Parallel()
	h := initialized(t)

	h.setUser(user1)
	require.Error(t, h.contract.SetTaxFee(h.ctx, "2000000000000"))

	h.setUser(deployer)
	require.Error(t, h.contract.SetTaxFee(h.ctx, "999999999"))       // below floor
	require.Error(t, h.contract.SetTaxFee(h.ctx, "100000000000001")) // above ceiling
	require.Error(t, h.contract.SetTaxFee(h.ctx, "0"))
	require.Error(t, h.contract.SetTaxFee(h.ctx, "-5"))
	require.Error(t, h.contract.SetTaxFee(h.ctx, "not-a-number"))

	require.NoError(t, h.contract.SetTaxFee(h.ctx, "2000000000000"))
	fee, err := h.contract.TaxFee(h.ctx)
	require.NoError(t, err)
	require.Equal(t, "2000000000000", fee)
	require.Equal(t, 1, h.eventCount(constants.EventTaxFeeUpdated))
}

func TestSetRateLimit(t *testing.T) {
	t.Parallel()
	h := initialized(t)

	h.setUser(deployer)
	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))

	// Admins are not enough, only the owner may retune the limiter.
	h.setUser(admin2)
	require.Error(t, h.contract.SetRateLimit(h.ctx, "60"))

	h.setUser(deployer)
	require.Error(t, h.contract.SetRateLimit(h.ctx, "9"))
	require.Error(t, h.contract.SetRateLimit(h.ctx, "3601"))
	require.Error(t, h.contract.SetRateLimit(h.ctx, "abc"))

	require.NoError(t, h.contract.SetRateLimit(h.ctx, "60"))
	rate, err := h.contract.RateLimit(h.ctx)
	require.NoError(t, err)
	require.Equal(t, "60", rate)
}

func TestRecipientLimits(t *testing.T) {
	t.Parallel()
	h := initialized(t)

	h.setUser(deployer)
	require.Error(t, h.contract.UpdateRecipientLimit(h.ctx, "15")) // below extended floor
	require.Error(t, h.contract.UpdateRecipientLimit(h.ctx, "31"))
	require.NoError(t, h.contract.UpdateRecipientLimit(h.ctx, "25"))

	require.NoError(t, h.contract.GrantRole(h.ctx, moderator1, constants.RoleModerator))

	h.setUser(moderator1)
	require.NoError(t, h.contract.SetMaxRecipients(h.ctx, user1))
	limit, err := h.contract.EffectiveRecipientLimit(h.ctx, user1)
	require.NoError(t, err)
	require.Equal(t, "25", limit)

	require.NoError(t, h.contract.SetDefaultRecipients(h.ctx, user1))
	limit, err = h.contract.EffectiveRecipientLimit(h.ctx, user1)
	require.NoError(t, err)
	require.Equal(t, "15", limit)

	h.setUser(user1)
	require.Error(t, h.contract.SetMaxRecipients(h.ctx, user2))
}

func TestPauseLifecycle(t *testing.T) {
	t.Parallel()
	h := initialized(t)

	h.setUser(user1)
	require.Error(t, h.contract.Pause(h.ctx))

	h.setUser(deployer)
	require.NoError(t, h.contract.Pause(h.ctx))
	paused, err := h.contract.Paused(h.ctx)
	require.NoError(t, err)
	require.True(t, paused)

	require.Error(t, h.contract.Pause(h.ctx))

	require.NoError(t, h.contract.Unpause(h.ctx))
	paused, err = h.contract.Paused(h.ctx)
	require.NoError(t, err)
	require.False(t, paused)

	require.Error(t, h.contract.Unpause(h.ctx))
}

func TestEmergencyStopRestoresPauseState(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	require.NoError(t, h.contract.EmergencyStop(h.ctx, "suspicious activity"))

	stopped, err := h.contract.EmergencyStopped(h.ctx)
	require.NoError(t, err)
	require.True(t, stopped)
	paused, err := h.contract.Paused(h.ctx)
	require.NoError(t, err)
	require.True(t, paused)

	// Unpausing is blocked while the stop is active.
	require.Error(t, h.contract.Unpause(h.ctx))
	require.Error(t, h.contract.EmergencyStop(h.ctx, "again"))

	require.NoError(t, h.contract.LiftEmergencyStop(h.ctx))
	paused, err = h.contract.Paused(h.ctx)
	require.NoError(t, err)
	require.False(t, paused) // was not paused before the stop

	// Now with a standing pause underneath.
	require.NoError(t, h.contract.Pause(h.ctx))
	require.NoError(t, h.contract.EmergencyStop(h.ctx, "incident"))
	require.NoError(t, h.contract.LiftEmergencyStop(h.ctx))
	paused, err = h.contract.Paused(h.ctx)
	require.NoError(t, err)
	require.True(t, paused)
}

func TestBlacklist(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)
	require.NoError(t, h.contract.GrantRole(h.ctx, moderator1, constants.RoleModerator))

	h.setUser(user1)
	require.Error(t, h.contract.AddToBlacklist(h.ctx, user2))

	h.setUser(moderator1)
	require.NoError(t, h.contract.AddToBlacklist(h.ctx, user2))
	denied, err := h.contract.IsBlacklisted(h.ctx, user2)
	require.NoError(t, err)
	require.True(t, denied)

	require.Error(t, h.contract.AddToBlacklist(h.ctx, user2))       // already listed
	require.Error(t, h.contract.AddToBlacklist(h.ctx, deployer))    // owner is immune
	require.Error(t, h.contract.AddToBlacklist(h.ctx, "bogus"))

	require.NoError(t, h.contract.RemoveFromBlacklist(h.ctx, user2))
	denied, err = h.contract.IsBlacklisted(h.ctx, user2)
	require.NoError(t, err)
	require.False(t, denied)

	require.Error(t, h.contract.RemoveFromBlacklist(h.ctx, user2))
}

func TestBlacklistProtectsAdmins(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)
	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))
	require.NoError(t, h.contract.GrantRole(h.ctx, moderator1, constants.RoleModerator))

	h.setUser(moderator1)
	require.Error(t, h.contract.AddToBlacklist(h.ctx, admin2))
}

func TestBlacklistBatch(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)

	require.NoError(t, h.contract.AddToBlacklistBatch(h.ctx, mustJSON(t, []string{user1, user2})))
	for _, address := range []string{user1, user2} {
		denied, err := h.contract.IsBlacklisted(h.ctx, address)
		require.NoError(t, err)
		require.True(t, denied)
	}
	require.Equal(t, 2, h.eventCount(constants.EventBlacklisted))

	// One bad entry fails the whole batch.
	require.Error(t, h.contract.AddToBlacklistBatch(h.ctx, mustJSON(t, []string{user3, user1})))
	require.Error(t, h.contract.AddToBlacklistBatch(h.ctx, "[]"))
	require.Error(t, h.contract.AddToBlacklistBatch(h.ctx, "not json"))

	require.NoError(t, h.contract.RemoveFromBlacklistBatch(h.ctx, mustJSON(t, []string{user1, user2})))
	denied, err := h.contract.IsBlacklisted(h.ctx, user1)
	require.NoError(t, err)
	require.False(t, denied)
}

func TestWhitelist(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)
	require.NoError(t, h.contract.GrantRole(h.ctx, admin2, constants.RoleAdmin))

	// Admins cannot curate the asset whitelist.
	h.setUser(admin2)
	require.Error(t, h.contract.WhitelistAsset(h.ctx, constants.ClassFungible, fungibleToken))

	h.setUser(deployer)
	require.Error(t, h.contract.WhitelistAsset(h.ctx, "bond", fungibleToken))
	require.Error(t, h.contract.WhitelistAsset(h.ctx, constants.ClassFungible, user1))

	require.NoError(t, h.contract.WhitelistAsset(h.ctx, constants.ClassFungible, fungibleToken))
	approved, err := h.contract.IsWhitelisted(h.ctx, constants.ClassFungible, fungibleToken)
	require.NoError(t, err)
	require.True(t, approved)

	// Approval is per class.
	approved, err = h.contract.IsWhitelisted(h.ctx, constants.ClassNonFungible, fungibleToken)
	require.NoError(t, err)
	require.False(t, approved)

	require.Error(t, h.contract.WhitelistAsset(h.ctx, constants.ClassFungible, fungibleToken))

	require.NoError(t, h.contract.RemoveWhitelistedAsset(h.ctx, constants.ClassFungible, fungibleToken))
	approved, err = h.contract.IsWhitelisted(h.ctx, constants.ClassFungible, fungibleToken)
	require.NoError(t, err)
	require.False(t, approved)

	require.Error(t, h.contract.RemoveWhitelistedAsset(h.ctx, constants.ClassFungible, fungibleToken))

	require.NoError(t, h.contract.WhitelistAssetBatch(h.ctx, constants.ClassNonFungible, mustJSON(t, []string{nftToken, multiToken})))
	approved, err = h.contract.IsWhitelisted(h.ctx, constants.ClassNonFungible, nftToken)
	require.NoError(t, err)
	require.True(t, approved)
}

func TestWhitelistBatchRemoval(t *testing.T) {
	t.Parallel()
	h := initialized(t)
	h.setUser(deployer)
	require.NoError(t, h.contract.WhitelistAssetBatch(h.ctx, constants.ClassFungible, mustJSON(t, []string{fungibleToken, multiToken})))

	// Owner-only, like the additions.
	h.setUser(user1)
	require.Error(t, h.contract.RemoveWhitelistedAssetBatch(h.ctx, constants.ClassFungible, mustJSON(t, []string{fungibleToken})))

	h.setUser(deployer)
	require.Error(t, h.contract.RemoveWhitelistedAssetBatch(h.ctx, constants.ClassFungible, "not json"))
	require.Error(t, h.contract.RemoveWhitelistedAssetBatch(h.ctx, constants.ClassFungible, mustJSON(t, []string{})))

	// An unlisted entry fails the whole batch.
	require.Error(t, h.contract.RemoveWhitelistedAssetBatch(h.ctx, constants.ClassFungible, mustJSON(t, []string{nftToken, fungibleToken})))
	approved, err := h.contract.IsWhitelisted(h.ctx, constants.ClassFungible, fungibleToken)
	require.NoError(t, err)
	require.True(t, approved)

	require.NoError(t, h.contract.RemoveWhitelistedAssetBatch(h.ctx, constants.ClassFungible, mustJSON(t, []string{fungibleToken, multiToken})))
	approved, err = h.contract.IsWhitelisted(h.ctx, constants.ClassFungible, fungibleToken)
	require.NoError(t, err)
	require.False(t, approved)
	approved, err = h.contract.IsWhitelisted(h.ctx, constants.ClassFungible, multiToken)
	require.NoError(t, err)
	require.False(t, approved)
}
