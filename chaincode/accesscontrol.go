package chaincode

import (
	"fmt"
	"net/http"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/events"
	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/internal"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/swifterr"
)

// GrantRole assigns admin or moderator to an account. Admins are granted
// by the owner, moderators by any admin. Each role has a hard ceiling.
func (s *SmartContract) GrantRole(ctx ledger.TransactionContextInterface, account string, role string) error {
	logger.Log.Infoln("GrantRole invoked.... with arguments", account, role)

	var signer string
	var err error
	switch role {
	case constants.RoleAdmin:
		signer, err = requireOwner(ctx)
	case constants.RoleModerator:
		signer, err = requireAdmin(ctx)
	default:
		return swifterr.New("invalid role: "+role, http.StatusBadRequest)
	}
	if err != nil {
		return err
	}

	if !helper.IsUserAddress(account) || helper.IsZeroAddress(account) {
		return swifterr.ErrInvalidUserAddress(account)
	}
	if denied, err := internal.IsBlacklisted(ctx, account); err != nil {
		return err
	} else if denied {
		return swifterr.ErrBlacklistedAddress(account)
	}
	if existing, err := internal.GetUserRole(ctx, account); err != nil {
		return err
	} else if existing != "" {
		return swifterr.New(fmt.Sprintf("account %s already holds role %s", account, existing), http.StatusConflict)
	}

	count, err := internal.CountRole(ctx, role)
	if err != nil {
		return err
	}
	switch role {
	case constants.RoleAdmin:
		if count >= constants.MaxAdmins {
			return swifterr.New(fmt.Sprintf("admin ceiling of %d reached", constants.MaxAdmins), http.StatusForbidden)
		}
	case constants.RoleModerator:
		if count >= constants.MaxModerators {
			return swifterr.New(fmt.Sprintf("moderator ceiling of %d reached", constants.MaxModerators), http.StatusForbidden)
		}
	}

	if err := internal.SetUserRole(ctx, account, role); err != nil {
		return err
	}
	return events.EmitRoleGranted(ctx, account, role, signer)
}

// RevokeRole removes a role. The last admin cannot be removed, and an
// admin cannot revoke itself.
func (s *SmartContract) RevokeRole(ctx ledger.TransactionContextInterface, account string) error {
	logger.Log.Infoln("RevokeRole invoked.... with arguments", account)

	role, err := internal.GetUserRole(ctx, account)
	if err != nil {
		return err
	}
	if role == "" {
		return swifterr.New(fmt.Sprintf("account %s holds no role", account), http.StatusNotFound)
	}

	var signer string
	switch role {
	case constants.RoleAdmin:
		signer, err = requireOwner(ctx)
	case constants.RoleModerator:
		signer, err = requireAdmin(ctx)
	}
	if err != nil {
		return err
	}

	if role == constants.RoleAdmin {
		if signer == account {
			return swifterr.New("admin cannot revoke itself", http.StatusForbidden)
		}
		count, err := internal.CountRole(ctx, constants.RoleAdmin)
		if err != nil {
			return err
		}
		if count <= 1 {
			return swifterr.New("cannot remove the last admin", http.StatusForbidden)
		}
	}

	if err := internal.RemoveUserRole(ctx, account); err != nil {
		return err
	}
	return events.EmitRoleRevoked(ctx, account, role, signer)
}

// TransferOwnership records a pending owner. The handoff completes only
// when the pending owner calls AcceptOwnership.
func (s *SmartContract) TransferOwnership(ctx ledger.TransactionContextInterface, newOwner string) error {
	logger.Log.Infoln("TransferOwnership invoked.... with arguments", newOwner)

	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	if renounced, err := internal.IsOwnershipRenounced(ctx); err != nil {
		return err
	} else if renounced {
		return swifterr.New("ownership was renounced and cannot be reinstated", http.StatusForbidden)
	}
	if !helper.IsUserAddress(newOwner) || helper.IsZeroAddress(newOwner) {
		return swifterr.ErrInvalidUserAddress(newOwner)
	}
	owner, err := internal.GetOwner(ctx)
	if err != nil {
		return err
	}
	if newOwner == owner {
		return swifterr.New("new owner is already the owner", http.StatusBadRequest)
	}
	if denied, err := internal.IsBlacklisted(ctx, newOwner); err != nil {
		return err
	} else if denied {
		return swifterr.ErrBlacklistedAddress(newOwner)
	}
	if e := ctx.PutStateWithoutKYC(constants.PendingOwnerKey, []byte(newOwner)); e != nil {
		return swifterr.ErrFailedToPutState(e)
	}
	return events.EmitOwnershipTransferStarted(ctx, owner, newOwner)
}

// PendingOwner returns the address awaiting AcceptOwnership, if any.
func (s *SmartContract) PendingOwner(ctx ledger.TransactionContextInterface) (string, error) {
	bytes, err := ctx.GetState(constants.PendingOwnerKey)
	if err != nil {
		return "", swifterr.ErrFailedToGetKey(constants.PendingOwnerKey)
	}
	return string(bytes), nil
}

// AcceptOwnership completes the two-step handoff. Only the pending owner
// may call it.
func (s *SmartContract) AcceptOwnership(ctx ledger.TransactionContextInterface) error {
	signer, err := helper.GetUserId(ctx)
	if err != nil {
		return err
	}
	pending, err := s.PendingOwner(ctx)
	if err != nil {
		return err
	}
	if pending == "" {
		return swifterr.New("no ownership transfer is pending", http.StatusBadRequest)
	}
	if signer != pending {
		return swifterr.New("caller is not the pending owner", http.StatusForbidden)
	}
	previous, err := internal.GetOwner(ctx)
	if err != nil {
		return err
	}
	if err := internal.SetOwner(ctx, signer); err != nil {
		return err
	}
	if e := ctx.DelStateWithoutKYC(constants.PendingOwnerKey); e != nil {
		return swifterr.ErrFailedToDeleteState(e)
	}
	return events.EmitOwnershipTransferred(ctx, previous, signer)
}

// RenounceOwnership permanently gives up the root role. Blocked while a
// handoff is pending so a renounce cannot race an accept.
func (s *SmartContract) RenounceOwnership(ctx ledger.TransactionContextInterface) error {
	signer, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	pending, err := s.PendingOwner(ctx)
	if err != nil {
		return err
	}
	if pending != "" {
		return swifterr.New("cannot renounce while an ownership transfer is pending", http.StatusConflict)
	}
	if e := ctx.PutStateWithoutKYC(constants.OwnerKey, []byte("")); e != nil {
		return swifterr.ErrFailedToPutState(e)
	}
	if err := internal.SetOwnershipRenounced(ctx); err != nil {
		return err
	}
	return events.EmitOwnershipRenounced(ctx, signer)
}
