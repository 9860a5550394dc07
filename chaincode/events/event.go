package events

import (
	"encoding/json"
	"net/http"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/swifterr"
)

type RoleEvent struct {
	Account string `json:"account"`
	Role    string `json:"role"`
	Grantor string `json:"grantor"`
}

type BlacklistEvent struct {
	Address string `json:"address"`
	Actor   string `json:"actor"`
}

type WhitelistEvent struct {
	Class string `json:"class"`
	Asset string `json:"asset"`
	Actor string `json:"actor"`
}

type FeeEvent struct {
	OldFee string `json:"oldFee"`
	NewFee string `json:"newFee"`
}

type RateLimitEvent struct {
	Seconds int64 `json:"seconds"`
}

type RecipientLimitEvent struct {
	Account  string `json:"account,omitempty"`
	Extended bool   `json:"extended"`
	Limit    int    `json:"limit"`
}

type PauseEvent struct {
	Actor string `json:"actor"`
}

type EmergencyEvent struct {
	Actor  string `json:"actor"`
	Reason string `json:"reason,omitempty"`
}

type BatchTransferEvent struct {
	Kind       string `json:"kind"`
	Caller     string `json:"caller"`
	Token      string `json:"token,omitempty"`
	Recipients int    `json:"recipients"`
	Executed   int    `json:"executed"`
	Fee        string `json:"fee"`
	Refund     string `json:"refund"`
}

type TransferFailedEvent struct {
	Kind      string `json:"kind"`
	Token     string `json:"token,omitempty"`
	Recipient string `json:"recipient"`
	Reason    string `json:"reason"`
}

type WithdrawalEvent struct {
	Amount  string `json:"amount"`
	Kind    string `json:"kind"`
	Asset   string `json:"asset,omitempty"`
	TokenId string `json:"tokenId,omitempty"`
}

type OwnershipEvent struct {
	PreviousOwner string `json:"previousOwner,omitempty"`
	NewOwner      string `json:"newOwner,omitempty"`
}

func emit(ctx ledger.TransactionContextInterface, name string, event interface{}) error {
	payload, e := json.Marshal(event)
	if e != nil {
		err := swifterr.NewInternalError(e, "failed to marshal "+name+" event", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return err
	}
	if e := ctx.SetEvent(name, payload); e != nil {
		err := swifterr.NewInternalError(e, "failed to emit "+name+" event", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return err
	}
	return nil
}

func EmitRoleGranted(ctx ledger.TransactionContextInterface, account, role, grantor string) error {
	return emit(ctx, constants.EventRoleGranted, RoleEvent{Account: account, Role: role, Grantor: grantor})
}

func EmitRoleRevoked(ctx ledger.TransactionContextInterface, account, role, grantor string) error {
	return emit(ctx, constants.EventRoleRevoked, RoleEvent{Account: account, Role: role, Grantor: grantor})
}

func EmitBlacklisted(ctx ledger.TransactionContextInterface, address, actor string) error {
	return emit(ctx, constants.EventBlacklisted, BlacklistEvent{Address: address, Actor: actor})
}

func EmitUnblacklisted(ctx ledger.TransactionContextInterface, address, actor string) error {
	return emit(ctx, constants.EventUnblacklisted, BlacklistEvent{Address: address, Actor: actor})
}

func EmitAssetWhitelisted(ctx ledger.TransactionContextInterface, class, asset, actor string) error {
	return emit(ctx, constants.EventAssetWhitelisted, WhitelistEvent{Class: class, Asset: asset, Actor: actor})
}

func EmitAssetUnwhitelisted(ctx ledger.TransactionContextInterface, class, asset, actor string) error {
	return emit(ctx, constants.EventAssetUnwhitelisted, WhitelistEvent{Class: class, Asset: asset, Actor: actor})
}

func EmitTaxFeeUpdated(ctx ledger.TransactionContextInterface, oldFee, newFee string) error {
	return emit(ctx, constants.EventTaxFeeUpdated, FeeEvent{OldFee: oldFee, NewFee: newFee})
}

func EmitRateLimitUpdated(ctx ledger.TransactionContextInterface, seconds int64) error {
	return emit(ctx, constants.EventRateLimitUpdated, RateLimitEvent{Seconds: seconds})
}

func EmitRecipientLimitUpdated(ctx ledger.TransactionContextInterface, account string, extended bool, limit int) error {
	return emit(ctx, constants.EventRecipientLimit, RecipientLimitEvent{Account: account, Extended: extended, Limit: limit})
}

func EmitPaused(ctx ledger.TransactionContextInterface, actor string) error {
	return emit(ctx, constants.EventPaused, PauseEvent{Actor: actor})
}

func EmitUnpaused(ctx ledger.TransactionContextInterface, actor string) error {
	return emit(ctx, constants.EventUnpaused, PauseEvent{Actor: actor})
}

func EmitEmergencyStopped(ctx ledger.TransactionContextInterface, actor, reason string) error {
	return emit(ctx, constants.EventEmergencyStopped, EmergencyEvent{Actor: actor, Reason: reason})
}

func EmitEmergencyLifted(ctx ledger.TransactionContextInterface, actor string) error {
	return emit(ctx, constants.EventEmergencyLifted, EmergencyEvent{Actor: actor})
}

func EmitBatchTransfer(ctx ledger.TransactionContextInterface, event BatchTransferEvent) error {
	return emit(ctx, constants.EventBatchTransfer, event)
}

func EmitTransferFailed(ctx ledger.TransactionContextInterface, event TransferFailedEvent) error {
	return emit(ctx, constants.EventTransferFailed, event)
}

func EmitWithdrawalRequested(ctx ledger.TransactionContextInterface, event WithdrawalEvent) error {
	return emit(ctx, constants.EventWithdrawalRequested, event)
}

func EmitWithdrawalCancelled(ctx ledger.TransactionContextInterface, event WithdrawalEvent) error {
	return emit(ctx, constants.EventWithdrawalCancelled, event)
}

func EmitWithdrawalCompleted(ctx ledger.TransactionContextInterface, event WithdrawalEvent) error {
	return emit(ctx, constants.EventWithdrawalCompleted, event)
}

func EmitOwnershipTransferStarted(ctx ledger.TransactionContextInterface, current, pending string) error {
	return emit(ctx, constants.EventOwnershipPending, OwnershipEvent{PreviousOwner: current, NewOwner: pending})
}

func EmitOwnershipTransferred(ctx ledger.TransactionContextInterface, previous, next string) error {
	return emit(ctx, constants.EventOwnershipTransferred, OwnershipEvent{PreviousOwner: previous, NewOwner: next})
}

func EmitOwnershipRenounced(ctx ledger.TransactionContextInterface, previous string) error {
	return emit(ctx, constants.EventOwnershipRenounced, OwnershipEvent{PreviousOwner: previous})
}
