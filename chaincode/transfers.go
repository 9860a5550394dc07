package chaincode

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/events"
	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/internal"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/models"
	"swift-contract/chaincode/swifterr"
	"swift-contract/chaincode/token"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func parsePayload(data string, input interface{}) error {
	if e := json.Unmarshal([]byte(data), input); e != nil {
		return fmt.Errorf("failed to parse data: %v", e)
	}
	if e := validate.Struct(input); e != nil {
		if validationErrors, ok := e.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(validationErrors))
			for _, fieldError := range validationErrors {
				fields = append(fields, fieldError.Field())
			}
			return swifterr.New("invalid payload fields: "+strings.Join(fields, ", "), http.StatusBadRequest)
		}
		return e
	}
	return nil
}

// batchCall is the normalized form all four entry points reduce to before
// hitting the shared engine.
type batchCall struct {
	kind       models.TransferKind
	class      string
	token      string
	recipients []string
	amounts    []*big.Int
	tokenIds   []string
	value      *big.Int

	// Raw payload strings, preserved for the commitment digest.
	rawAmounts []string
	rawValue   string
}

// Commit records the digest of a future batch transfer. While MEV
// protection is on, a transfer only executes if its parameters hash to a
// commitment recorded in an earlier block by the same sender.
func (s *SmartContract) Commit(ctx ledger.TransactionContextInterface, hash string) error {
	logger.Log.Infoln("Commit invoked.... with arguments", hash)

	signer, err := helper.GetUserId(ctx)
	if err != nil {
		return err
	}
	if err := internal.RequireNotSuspended(ctx, signer); err != nil {
		return err
	}
	if decoded, e := hex.DecodeString(hash); e != nil || len(decoded) != 32 {
		return swifterr.New("invalid commitment hash: "+hash, http.StatusBadRequest)
	}
	if existing, err := internal.GetCommitment(ctx, hash); err != nil {
		return err
	} else if existing != nil {
		return swifterr.New("commitment already recorded", http.StatusConflict)
	}
	now, err := helper.TxTimestampSeconds(ctx)
	if err != nil {
		return err
	}
	return internal.PutCommitment(ctx, hash, models.Commitment{
		Sender:     signer,
		CommitTime: now,
		DocType:    constants.CommitmentDoc,
	})
}

func (s *SmartContract) MultiTransferNative(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("MultiTransferNative invoked.... with arguments", data)

	var input models.NativeTransferInput
	if err := parsePayload(data, &input); err != nil {
		return err
	}
	if len(input.Amounts) != len(input.Recipients) {
		return swifterr.New("recipients and amounts must have the same length", http.StatusBadRequest)
	}
	amounts, err := parseAmounts(input.Amounts)
	if err != nil {
		return err
	}
	value, err := helper.ParseNonNegativeAmount(input.Value)
	if err != nil {
		return err
	}
	return s.executeBatch(ctx, batchCall{
		kind:       models.KindNative,
		recipients: input.Recipients,
		amounts:    amounts,
		value:      value,
		rawAmounts: input.Amounts,
		rawValue:   input.Value,
	})
}

func (s *SmartContract) MultiTransferFungible(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("MultiTransferFungible invoked.... with arguments", data)

	var input models.FungibleTransferInput
	if err := parsePayload(data, &input); err != nil {
		return err
	}
	if !helper.IsContractAddress(input.Token) {
		return swifterr.ErrInvalidContractAddress(input.Token)
	}
	if len(input.Amounts) != len(input.Recipients) {
		return swifterr.New("recipients and amounts must have the same length", http.StatusBadRequest)
	}
	amounts, err := parseAmounts(input.Amounts)
	if err != nil {
		return err
	}
	value, err := helper.ParseNonNegativeAmount(input.Value)
	if err != nil {
		return err
	}
	return s.executeBatch(ctx, batchCall{
		kind:       models.KindFungible,
		class:      constants.ClassFungible,
		token:      input.Token,
		recipients: input.Recipients,
		amounts:    amounts,
		value:      value,
		rawAmounts: input.Amounts,
		rawValue:   input.Value,
	})
}

func (s *SmartContract) MultiTransferNFT(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("MultiTransferNFT invoked.... with arguments", data)

	var input models.NFTTransferInput
	if err := parsePayload(data, &input); err != nil {
		return err
	}
	if !helper.IsContractAddress(input.Token) {
		return swifterr.ErrInvalidContractAddress(input.Token)
	}
	if len(input.TokenIds) != len(input.Recipients) {
		return swifterr.New("recipients and tokenIds must have the same length", http.StatusBadRequest)
	}
	for i, id := range input.TokenIds {
		for _, earlier := range input.TokenIds[:i] {
			if id == earlier {
				return swifterr.New("duplicate tokenId in batch: "+id, http.StatusBadRequest)
			}
		}
	}
	value, err := helper.ParseNonNegativeAmount(input.Value)
	if err != nil {
		return err
	}
	return s.executeBatch(ctx, batchCall{
		kind:       models.KindNonFungible,
		class:      constants.ClassNonFungible,
		token:      input.Token,
		recipients: input.Recipients,
		tokenIds:   input.TokenIds,
		value:      value,
		rawValue:   input.Value,
	})
}

func (s *SmartContract) MultiTransferMultiToken(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("MultiTransferMultiToken invoked.... with arguments", data)

	var input models.MultiTokenTransferInput
	if err := parsePayload(data, &input); err != nil {
		return err
	}
	if !helper.IsContractAddress(input.Token) {
		return swifterr.ErrInvalidContractAddress(input.Token)
	}
	if len(input.TokenIds) != len(input.Recipients) || len(input.Amounts) != len(input.Recipients) {
		return swifterr.New("recipients, tokenIds and amounts must have the same length", http.StatusBadRequest)
	}
	amounts, err := parseAmounts(input.Amounts)
	if err != nil {
		return err
	}
	value, err := helper.ParseNonNegativeAmount(input.Value)
	if err != nil {
		return err
	}
	return s.executeBatch(ctx, batchCall{
		kind:       models.KindMultiToken,
		class:      constants.ClassMultiToken,
		token:      input.Token,
		recipients: input.Recipients,
		amounts:    amounts,
		tokenIds:   input.TokenIds,
		value:      value,
		rawAmounts: input.Amounts,
		rawValue:   input.Value,
	})
}

func parseAmounts(raw []string) ([]*big.Int, error) {
	amounts := make([]*big.Int, len(raw))
	for i, a := range raw {
		amount, err := helper.ParsePositiveAmount(a)
		if err != nil {
			return nil, err
		}
		amounts[i] = amount
	}
	return amounts, nil
}

// executeBatch runs the shared transfer pipeline: reentrancy guard,
// gatekeeping, shape and recipient validation, fee accounting, optional
// commit-reveal verification, then the kind-specific movement.
func (s *SmartContract) executeBatch(ctx ledger.TransactionContextInterface, call batchCall) error {
	signer, err := helper.GetUserId(ctx)
	if err != nil {
		return err
	}

	txID := ctx.GetTxID()
	if err := internal.EnterNonReentrant(txID); err != nil {
		return err
	}
	defer internal.ExitNonReentrant(txID)

	if err := internal.RequireEntryAllowed(ctx, signer); err != nil {
		return err
	}

	limit, err := internal.EffectiveRecipientLimit(ctx, signer)
	if err != nil {
		return err
	}
	count := len(call.recipients)
	if count == 0 {
		return swifterr.New("no recipients passed", http.StatusBadRequest)
	}
	if count > limit {
		return swifterr.New(fmt.Sprintf("recipient count %d exceeds the allowed limit %d", count, limit), http.StatusBadRequest)
	}
	for _, recipient := range call.recipients {
		if !helper.IsUserAddress(recipient) || helper.IsZeroAddress(recipient) {
			return swifterr.ErrInvalidUserAddress(recipient)
		}
		if denied, err := internal.IsBlacklisted(ctx, recipient); err != nil {
			return err
		} else if denied {
			return swifterr.ErrBlacklistedAddress(recipient)
		}
	}

	taxFeeStr, err := s.TaxFee(ctx)
	if err != nil {
		return err
	}
	taxFee, ok := new(big.Int).SetString(taxFeeStr, 10)
	if !ok {
		return swifterr.ErrConvertingAmountToBigInt(taxFeeStr)
	}
	fee := new(big.Int).Mul(taxFee, big.NewInt(int64(count)))

	if protected, err := internal.IsMevProtectionEnabled(ctx); err != nil {
		return err
	} else if protected {
		if err := s.verifyCommitment(ctx, signer, call); err != nil {
			return err
		}
	}

	if call.kind == models.KindNative {
		return s.transferNative(ctx, signer, call, fee)
	}

	if approved, err := internal.IsWhitelisted(ctx, call.class, call.token); err != nil {
		return err
	} else if !approved {
		return swifterr.ErrNotWhitelisted(call.class, call.token)
	}
	// Token batches carry native value covering the fee and nothing else.
	if call.value.Cmp(fee) != 0 {
		return swifterr.New(fmt.Sprintf("attached value %s must equal the batch fee %s", call.value, fee), http.StatusBadRequest)
	}

	owner, err := internal.GetOwner(ctx)
	if err != nil {
		return err
	}
	return s.transferTokens(ctx, signer, call, taxFee, owner != "" && signer == owner)
}

// verifyCommitment checks the commit-reveal discipline: a matching digest
// recorded by the same sender in an earlier block, still inside the reveal
// window, on a call made directly to this contract. The commitment is
// single-use.
func (s *SmartContract) verifyCommitment(ctx ledger.TransactionContextInterface, signer string, call batchCall) error {
	parts := []string{call.kind.String(), signer}
	if call.token != "" {
		parts = append(parts, call.token)
	}
	parts = append(parts, call.recipients...)
	parts = append(parts, call.rawAmounts...)
	parts = append(parts, call.tokenIds...)
	parts = append(parts, call.rawValue)
	hash := helper.CommitmentHash(parts...)

	commitment, err := internal.GetCommitment(ctx, hash)
	if err != nil {
		return err
	}
	if commitment == nil {
		return swifterr.New("no commitment recorded for this transfer", http.StatusForbidden)
	}
	if commitment.Sender != signer {
		return swifterr.New("commitment was recorded by a different sender", http.StatusForbidden)
	}
	now, err := helper.TxTimestampSeconds(ctx)
	if err != nil {
		return err
	}
	if now <= commitment.CommitTime {
		return swifterr.New("reveal must come after the commit", http.StatusForbidden)
	}
	if now > commitment.CommitTime+constants.CommitmentWindow {
		return swifterr.New("commitment has expired", http.StatusForbidden)
	}

	called, err := internal.GetCalledContractAddress(ctx)
	if err != nil {
		return err
	}
	self, err := internal.GetSelfAddress(ctx)
	if err != nil {
		return err
	}
	if called != self {
		return swifterr.New("protected transfers must be invoked directly, not through another contract", http.StatusForbidden)
	}
	return internal.ConsumeCommitment(ctx, hash)
}

// transferNative moves native balances ledger-internally. The attached
// value must cover the recipient total plus the fee; any surplus stays
// with the caller and is reported as the refund.
func (s *SmartContract) transferNative(ctx ledger.TransactionContextInterface, signer string, call batchCall, fee *big.Int) error {
	total := big.NewInt(0)
	for _, amount := range call.amounts {
		total.Add(total, amount)
	}
	required := new(big.Int).Add(total, fee)
	if call.value.Cmp(required) < 0 {
		return swifterr.New(fmt.Sprintf("attached value %s below required %s (transfers %s + fee %s)", call.value, required, total, fee), http.StatusBadRequest)
	}

	if err := internal.RemoveBalance(ctx, signer, required); err != nil {
		return swifterr.ErrInsufficientBalance(signer)
	}
	for i, recipient := range call.recipients {
		if err := internal.AddBalance(ctx, recipient, call.amounts[i]); err != nil {
			return err
		}
	}

	self, err := internal.GetSelfAddress(ctx)
	if err != nil {
		return err
	}
	if err := internal.AddBalance(ctx, self, fee); err != nil {
		return err
	}
	if err := internal.AddRoyalties(ctx, fee); err != nil {
		return err
	}

	refund := new(big.Int).Sub(call.value, required)
	return events.EmitBatchTransfer(ctx, events.BatchTransferEvent{
		Kind:       call.kind.String(),
		Caller:     signer,
		Recipients: len(call.recipients),
		Executed:   len(call.recipients),
		Fee:        fee.String(),
		Refund:     refund.String(),
	})
}

// transferTokens drives the external asset contract one recipient at a
// time. Non-owner batches are all-or-nothing: the first failed
// sub-transfer aborts the transaction and nothing commits. Owner batches
// run best-effort: failures are skipped and reported, and three
// consecutive failures trip the emergency stop and halt the batch. Fees
// settle only for sub-transfers that executed; the remainder of the
// attached value is reported as the refund.
func (s *SmartContract) transferTokens(ctx ledger.TransactionContextInterface, signer string, call batchCall, taxFee *big.Int, bestEffort bool) error {
	executed := 0
	consecutive := 0

	for i, recipient := range call.recipients {
		failure := s.transferOne(ctx, signer, recipient, call, i)
		if failure == nil {
			executed++
			consecutive = 0
			continue
		}
		if !bestEffort {
			return failure
		}

		logger.Log.Infof("sub-transfer to %s failed: %s", recipient, failure.Error())
		if err := events.EmitTransferFailed(ctx, events.TransferFailedEvent{
			Kind:      call.kind.String(),
			Token:     call.token,
			Recipient: recipient,
			Reason:    failure.Error(),
		}); err != nil {
			return err
		}
		consecutive++
		if consecutive >= constants.FailureThreshold {
			if err := s.tripEmergencyStop(ctx, signer); err != nil {
				return err
			}
			break
		}
	}

	settled := new(big.Int).Mul(taxFee, big.NewInt(int64(executed)))
	if settled.Sign() > 0 {
		if err := internal.RemoveBalance(ctx, signer, settled); err != nil {
			return swifterr.ErrInsufficientBalance(signer)
		}
		self, err := internal.GetSelfAddress(ctx)
		if err != nil {
			return err
		}
		if err := internal.AddBalance(ctx, self, settled); err != nil {
			return err
		}
		if err := internal.AddRoyalties(ctx, settled); err != nil {
			return err
		}
	}

	refund := new(big.Int).Sub(call.value, settled)
	return events.EmitBatchTransfer(ctx, events.BatchTransferEvent{
		Kind:       call.kind.String(),
		Caller:     signer,
		Token:      call.token,
		Recipients: len(call.recipients),
		Executed:   executed,
		Fee:        settled.String(),
		Refund:     refund.String(),
	})
}

// transferOne performs a single sub-transfer against the external asset
// contract, with the kind-specific precondition probe first.
func (s *SmartContract) transferOne(ctx ledger.TransactionContextInterface, signer, recipient string, call batchCall, i int) error {
	switch call.kind {
	case models.KindFungible:
		asset := token.NewFungible(call.token)
		return asset.TransferFrom(ctx, signer, recipient, call.amounts[i])

	case models.KindNonFungible:
		asset := token.NewNonFungible(call.token)
		holder, err := asset.OwnerOf(ctx, call.tokenIds[i])
		if err != nil {
			return err
		}
		if holder != signer {
			return swifterr.New(fmt.Sprintf("caller does not own token %s on %s", call.tokenIds[i], call.token), http.StatusForbidden)
		}
		return asset.SafeTransferFrom(ctx, signer, recipient, call.tokenIds[i])

	case models.KindMultiToken:
		asset := token.NewMultiToken(call.token)
		balance, err := asset.BalanceOf(ctx, signer, call.tokenIds[i])
		if err != nil {
			return err
		}
		if balance.Cmp(call.amounts[i]) < 0 {
			return swifterr.New(fmt.Sprintf("caller holds %s of token %s, needs %s", balance, call.tokenIds[i], call.amounts[i]), http.StatusForbidden)
		}
		return asset.SafeTransferFrom(ctx, signer, recipient, call.tokenIds[i], call.amounts[i])
	}
	return swifterr.New("unsupported transfer kind", http.StatusBadRequest)
}

// tripEmergencyStop engages the emergency stop from inside a batch after
// repeated sub-transfer failures.
func (s *SmartContract) tripEmergencyStop(ctx ledger.TransactionContextInterface, actor string) error {
	paused, err := internal.IsPaused(ctx)
	if err != nil {
		return err
	}
	if err := internal.SetPausedBeforeEmergency(ctx, paused); err != nil {
		return err
	}
	if err := internal.SetPaused(ctx, true); err != nil {
		return err
	}
	if err := internal.SetEmergencyStopped(ctx, true); err != nil {
		return err
	}
	reason := fmt.Sprintf("%d consecutive transfer failures", constants.FailureThreshold)
	if e := ctx.PutStateWithoutKYC(constants.EmergencyReasonKey, []byte(reason)); e != nil {
		return swifterr.ErrFailedToPutState(e)
	}
	return events.EmitEmergencyStopped(ctx, actor, reason)
}
