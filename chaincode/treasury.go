package chaincode

import (
	"fmt"
	"math/big"
	"net/http"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/events"
	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/internal"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/models"
	"swift-contract/chaincode/swifterr"
	"swift-contract/chaincode/token"
)

// RequestWithdrawal opens the two-phase treasury withdrawal. Only one
// request may be outstanding at a time, and it can complete no earlier
// than the timelock delay after this call.
func (s *SmartContract) RequestWithdrawal(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("RequestWithdrawal invoked.... with arguments", data)

	if _, err := requireAdmin(ctx); err != nil {
		return err
	}

	var input models.WithdrawalInput
	if err := parsePayload(data, &input); err != nil {
		return err
	}

	if existing, err := internal.GetWithdrawalRequest(ctx); err != nil {
		return err
	} else if existing != nil && !existing.Cancelled {
		return swifterr.New("a withdrawal request is already pending", http.StatusConflict)
	}

	amount, err := helper.ParsePositiveAmount(input.Amount)
	if err != nil {
		return err
	}
	if err := s.checkWithdrawalAvailability(ctx, input, amount); err != nil {
		return err
	}

	now, err := helper.TxTimestampSeconds(ctx)
	if err != nil {
		return err
	}
	request := models.WithdrawalRequest{
		Amount:      amount.String(),
		Kind:        input.Kind,
		Asset:       input.Asset,
		TokenId:     input.TokenId,
		RequestTime: now,
		DocType:     constants.WithdrawalDoc,
	}
	if err := internal.PutWithdrawalRequest(ctx, request); err != nil {
		return err
	}
	return events.EmitWithdrawalRequested(ctx, events.WithdrawalEvent{
		Amount:  request.Amount,
		Kind:    request.Kind,
		Asset:   request.Asset,
		TokenId: request.TokenId,
	})
}

// CancelWithdrawal voids the pending request without paying out.
func (s *SmartContract) CancelWithdrawal(ctx ledger.TransactionContextInterface) error {
	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	request, err := internal.GetWithdrawalRequest(ctx)
	if err != nil {
		return err
	}
	if request == nil || request.Cancelled {
		return swifterr.New("no withdrawal request is pending", http.StatusNotFound)
	}
	request.Cancelled = true
	if err := internal.PutWithdrawalRequest(ctx, *request); err != nil {
		return err
	}
	return events.EmitWithdrawalCancelled(ctx, events.WithdrawalEvent{
		Amount:  request.Amount,
		Kind:    request.Kind,
		Asset:   request.Asset,
		TokenId: request.TokenId,
	})
}

// CompleteWithdrawal pays the pending request to the current owner once
// the timelock has elapsed. Availability is re-checked at completion
// because treasury holdings can shrink between the two phases.
func (s *SmartContract) CompleteWithdrawal(ctx ledger.TransactionContextInterface) error {
	logger.Log.Infoln("CompleteWithdrawal invoked....")

	signer, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if err := internal.RequireNotSuspended(ctx, signer); err != nil {
		return err
	}
	request, err := internal.GetWithdrawalRequest(ctx)
	if err != nil {
		return err
	}
	if request == nil || request.Cancelled {
		return swifterr.New("no withdrawal request is pending", http.StatusNotFound)
	}

	now, err := helper.TxTimestampSeconds(ctx)
	if err != nil {
		return err
	}
	releaseAt := request.RequestTime + constants.WithdrawalDelay
	if now < releaseAt {
		return swifterr.New(fmt.Sprintf("withdrawal is timelocked until %d", releaseAt), http.StatusForbidden)
	}

	owner, err := internal.GetOwner(ctx)
	if err != nil {
		return err
	}
	if owner == "" {
		return swifterr.New("ownership renounced, withdrawals have no payee", http.StatusForbidden)
	}

	amount, ok := new(big.Int).SetString(request.Amount, 10)
	if !ok {
		return swifterr.ErrConvertingAmountToBigInt(request.Amount)
	}
	input := models.WithdrawalInput{
		Amount:  request.Amount,
		Kind:    request.Kind,
		Asset:   request.Asset,
		TokenId: request.TokenId,
	}
	if err := s.checkWithdrawalAvailability(ctx, input, amount); err != nil {
		return err
	}

	if err := s.payWithdrawal(ctx, owner, *request, amount); err != nil {
		return err
	}
	if err := internal.ClearWithdrawalRequest(ctx); err != nil {
		return err
	}
	return events.EmitWithdrawalCompleted(ctx, events.WithdrawalEvent{
		Amount:  request.Amount,
		Kind:    request.Kind,
		Asset:   request.Asset,
		TokenId: request.TokenId,
	})
}

// checkWithdrawalAvailability verifies the treasury actually holds what
// the request names, per kind.
func (s *SmartContract) checkWithdrawalAvailability(ctx ledger.TransactionContextInterface, input models.WithdrawalInput, amount *big.Int) error {
	switch input.Kind {
	case constants.WithdrawKindRoyalty:
		royalties, err := internal.GetRoyalties(ctx)
		if err != nil {
			return err
		}
		if amount.Cmp(royalties) > 0 {
			return swifterr.New(fmt.Sprintf("requested %s exceeds accumulated royalties %s", amount, royalties), http.StatusBadRequest)
		}
		return nil

	case constants.WithdrawKindGeneral:
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		balance, err := internal.GetBalance(ctx, self)
		if err != nil {
			return err
		}
		royalties, err := internal.GetRoyalties(ctx)
		if err != nil {
			return err
		}
		// Royalties are earmarked; general withdrawals may only touch the
		// excess.
		free := new(big.Int).Sub(balance, royalties)
		if amount.Cmp(free) > 0 {
			return swifterr.New(fmt.Sprintf("requested %s exceeds free treasury balance %s", amount, free), http.StatusBadRequest)
		}
		return nil

	case constants.ClassFungible:
		if !helper.IsContractAddress(input.Asset) {
			return swifterr.ErrInvalidContractAddress(input.Asset)
		}
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		balance, err := token.NewFungible(input.Asset).BalanceOf(ctx, self)
		if err != nil {
			return err
		}
		if amount.Cmp(balance) > 0 {
			return swifterr.New(fmt.Sprintf("requested %s exceeds treasury holding %s on %s", amount, balance, input.Asset), http.StatusBadRequest)
		}
		return nil

	case constants.ClassNonFungible:
		if !helper.IsContractAddress(input.Asset) {
			return swifterr.ErrInvalidContractAddress(input.Asset)
		}
		if input.TokenId == "" {
			return swifterr.New("tokenId is required for a non-fungible withdrawal", http.StatusBadRequest)
		}
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		holder, err := token.NewNonFungible(input.Asset).OwnerOf(ctx, input.TokenId)
		if err != nil {
			return err
		}
		if holder != self {
			return swifterr.New(fmt.Sprintf("treasury does not hold token %s on %s", input.TokenId, input.Asset), http.StatusBadRequest)
		}
		return nil

	case constants.ClassMultiToken:
		if !helper.IsContractAddress(input.Asset) {
			return swifterr.ErrInvalidContractAddress(input.Asset)
		}
		if input.TokenId == "" {
			return swifterr.New("tokenId is required for a multi-token withdrawal", http.StatusBadRequest)
		}
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		balance, err := token.NewMultiToken(input.Asset).BalanceOf(ctx, self, input.TokenId)
		if err != nil {
			return err
		}
		if amount.Cmp(balance) > 0 {
			return swifterr.New(fmt.Sprintf("requested %s exceeds treasury holding %s of token %s", amount, balance, input.TokenId), http.StatusBadRequest)
		}
		return nil
	}
	return swifterr.New("invalid withdrawal kind: "+input.Kind, http.StatusBadRequest)
}

func (s *SmartContract) payWithdrawal(ctx ledger.TransactionContextInterface, owner string, request models.WithdrawalRequest, amount *big.Int) error {
	switch request.Kind {
	case constants.WithdrawKindRoyalty:
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		if err := internal.RemoveBalance(ctx, self, amount); err != nil {
			return err
		}
		if err := internal.AddBalance(ctx, owner, amount); err != nil {
			return err
		}
		return internal.SubRoyalties(ctx, amount)

	case constants.WithdrawKindGeneral:
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		if err := internal.RemoveBalance(ctx, self, amount); err != nil {
			return err
		}
		return internal.AddBalance(ctx, owner, amount)

	case constants.ClassFungible:
		return token.NewFungible(request.Asset).Transfer(ctx, owner, amount)

	case constants.ClassNonFungible:
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		return token.NewNonFungible(request.Asset).SafeTransferFrom(ctx, self, owner, request.TokenId)

	case constants.ClassMultiToken:
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		return token.NewMultiToken(request.Asset).SafeTransferFrom(ctx, self, owner, request.TokenId, amount)
	}
	return swifterr.New("invalid withdrawal kind: "+request.Kind, http.StatusBadRequest)
}
