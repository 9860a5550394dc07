package internal

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/models"
	"swift-contract/chaincode/swifterr"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/peer"
)

// ---- roles ----

func SetUserRole(ctx ledger.TransactionContextInterface, id string, role string) error {
	userRole := models.UserRole{
		Id:      id,
		Role:    role,
		DocType: constants.UserRoleMap,
	}
	roleJSON, e := json.Marshal(userRole)
	if e != nil {
		return swifterr.New("error in marshaling user role: "+role, http.StatusInternalServerError)
	}
	key, e := ctx.CreateCompositeKey(constants.UserRolePrefix, []string{id, constants.UserRoleMap})
	if e != nil {
		return swifterr.NewInternalError(e, "failed to create the composite key for user role: "+role, http.StatusInternalServerError)
	}
	if e := ctx.PutStateWithoutKYC(key, roleJSON); e != nil {
		return swifterr.NewInternalError(e, fmt.Sprintf("unable to put user role: %s in statedb", role), http.StatusInternalServerError)
	}
	return nil
}

func GetUserRole(ctx ledger.TransactionContextInterface, id string) (string, error) {
	key, err := ctx.CreateCompositeKey(constants.UserRolePrefix, []string{id, constants.UserRoleMap})
	if err != nil {
		return "", fmt.Errorf("failed to create the composite key for prefix %s: %v", constants.UserRolePrefix, err)
	}
	userJSON, err := ctx.GetState(key)
	if err != nil {
		return "", fmt.Errorf("failed to read from world state: %v", err)
	}
	if userJSON == nil {
		return "", nil
	}
	var userRole models.UserRole
	if err := json.Unmarshal(userJSON, &userRole); err != nil {
		return "", fmt.Errorf("unable to unmarshal user role struct: %v", err)
	}
	return userRole.Role, nil
}

func RemoveUserRole(ctx ledger.TransactionContextInterface, id string) error {
	key, err := ctx.CreateCompositeKey(constants.UserRolePrefix, []string{id, constants.UserRoleMap})
	if err != nil {
		return fmt.Errorf("failed to create the composite key for prefix %s: %v", constants.UserRolePrefix, err)
	}
	if err := ctx.DelStateWithoutKYC(key); err != nil {
		return swifterr.ErrFailedToDeleteState(err)
	}
	return nil
}

// CountRole walks the role map and counts members holding the given role.
func CountRole(ctx ledger.TransactionContextInterface, role string) (int, error) {
	iterator, err := ctx.GetStateByPartialCompositeKey(constants.UserRolePrefix, []string{})
	if err != nil {
		return 0, fmt.Errorf("failed to get state for role members: %v", err)
	}
	defer iterator.Close()

	count := 0
	for iterator.HasNext() {
		response, err := iterator.Next()
		if err != nil {
			return 0, fmt.Errorf("error reading next item: %v", err)
		}
		var userRole models.UserRole
		if err := json.Unmarshal(response.Value, &userRole); err != nil {
			return 0, fmt.Errorf("failed to parse user role data: %v", err)
		}
		if userRole.Role == role {
			count++
		}
	}
	return count, nil
}

func GetOwner(ctx ledger.TransactionContextInterface) (string, error) {
	bytes, err := ctx.GetState(constants.OwnerKey)
	if err != nil {
		return "", swifterr.ErrFailedToGetKey(constants.OwnerKey)
	}
	return string(bytes), nil
}

func SetOwner(ctx ledger.TransactionContextInterface, owner string) error {
	if err := ctx.PutStateWithoutKYC(constants.OwnerKey, []byte(owner)); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

// IsSignerOwner resolves the transaction signer and reports whether it is
// the current owner. A renounced contract has no owner, so nothing matches.
func IsSignerOwner(ctx ledger.TransactionContextInterface) (string, bool, error) {
	signer, e := helper.GetUserId(ctx)
	if e != nil {
		err := swifterr.NewInternalError(e, "failed to get client id", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", false, err
	}
	owner, err := GetOwner(ctx)
	if err != nil {
		return "", false, err
	}
	return signer, owner != "" && signer == owner, nil
}

// HasRole reports whether the account holds the role, treating the owner
// key as an implicit role of its own.
func HasRole(ctx ledger.TransactionContextInterface, account string, role string) (bool, error) {
	if role == constants.RoleOwner {
		owner, err := GetOwner(ctx)
		if err != nil {
			return false, err
		}
		return owner != "" && owner == account, nil
	}
	held, err := GetUserRole(ctx, account)
	if err != nil {
		return false, err
	}
	return held == role, nil
}

// ---- blacklist ----

func BlacklistAddress(ctx ledger.TransactionContextInterface, address string) error {
	key, err := ctx.CreateCompositeKey(constants.DenyListKey, []string{address})
	if err != nil {
		return fmt.Errorf("failed to create composite key for blacklist: %v", err)
	}
	if err := ctx.PutStateWithoutKYC(key, []byte("true")); err != nil {
		return fmt.Errorf("failed to put state in blacklist: %v", err)
	}
	return nil
}

func UnblacklistAddress(ctx ledger.TransactionContextInterface, address string) error {
	key, err := ctx.CreateCompositeKey(constants.DenyListKey, []string{address})
	if err != nil {
		return fmt.Errorf("failed to create composite key for blacklist: %v", err)
	}
	if err := ctx.PutStateWithoutKYC(key, []byte("false")); err != nil {
		return fmt.Errorf("failed to put state in blacklist: %v", err)
	}
	return nil
}

func IsBlacklisted(ctx ledger.TransactionContextInterface, address string) (bool, error) {
	key, err := ctx.CreateCompositeKey(constants.DenyListKey, []string{address})
	if err != nil {
		return false, fmt.Errorf("failed to create composite key for blacklist: %v", err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to get state from blacklist: %v", err)
	}
	if bytes == nil || string(bytes) == "false" {
		return false, nil
	}
	return true, nil
}

// ---- asset whitelist ----

func SetWhitelisted(ctx ledger.TransactionContextInterface, class string, asset string, approved bool) error {
	key, err := ctx.CreateCompositeKey(constants.WhitelistPrefix, []string{class, asset})
	if err != nil {
		return fmt.Errorf("failed to create composite key for whitelist: %v", err)
	}
	value := "false"
	if approved {
		value = "true"
	}
	if err := ctx.PutStateWithoutKYC(key, []byte(value)); err != nil {
		return fmt.Errorf("failed to put state in whitelist: %v", err)
	}
	return nil
}

func IsWhitelisted(ctx ledger.TransactionContextInterface, class string, asset string) (bool, error) {
	key, err := ctx.CreateCompositeKey(constants.WhitelistPrefix, []string{class, asset})
	if err != nil {
		return false, fmt.Errorf("failed to create composite key for whitelist: %v", err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to get state from whitelist: %v", err)
	}
	return bytes != nil && string(bytes) == "true", nil
}

// ---- native balances ----

func balanceKey(ctx ledger.TransactionContextInterface, account string) (string, error) {
	return ctx.CreateCompositeKey(constants.BalancePrefix, []string{account})
}

func GetBalance(ctx ledger.TransactionContextInterface, account string) (*big.Int, error) {
	key, err := balanceKey(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("failed to create the composite key for account %s: %v", account, err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read balance of account %s: %v", account, err)
	}
	if bytes == nil {
		return big.NewInt(0), nil
	}
	var balance models.Balance
	if err := json.Unmarshal(bytes, &balance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal balance for account %s: %v", account, err)
	}
	amount, ok := new(big.Int).SetString(balance.Amount, 10)
	if !ok {
		return nil, swifterr.ErrConvertingAmountToBigInt(balance.Amount)
	}
	return amount, nil
}

func putBalance(ctx ledger.TransactionContextInterface, account string, amount *big.Int) error {
	key, err := balanceKey(ctx, account)
	if err != nil {
		return fmt.Errorf("failed to create the composite key for account %s: %v", account, err)
	}
	balance := models.Balance{
		Account: account,
		Amount:  amount.String(),
		DocType: constants.BalanceDoc,
	}
	balanceJSON, err := json.Marshal(balance)
	if err != nil {
		return fmt.Errorf("failed to marshal balance for account %s: %v", account, err)
	}
	if err := ctx.PutStateWithoutKYC(key, balanceJSON); err != nil {
		return fmt.Errorf("failed to put balance for account %s: %v", account, err)
	}
	return nil
}

func AddBalance(ctx ledger.TransactionContextInterface, account string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("amount to add cannot be negative")
	}
	if amount.Sign() == 0 {
		return nil
	}
	current, err := GetBalance(ctx, account)
	if err != nil {
		return err
	}
	return putBalance(ctx, account, new(big.Int).Add(current, amount))
}

func RemoveBalance(ctx ledger.TransactionContextInterface, account string, amount *big.Int) error {
	if amount.Sign() < 0 {
		return fmt.Errorf("amount to remove cannot be negative")
	}
	if amount.Sign() == 0 {
		return nil
	}
	current, err := GetBalance(ctx, account)
	if err != nil {
		return err
	}
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("account %v has insufficient balance, required: %v, available: %v", account, amount, current)
	}
	return putBalance(ctx, account, new(big.Int).Sub(current, amount))
}

// ---- treasury royalties ----

func GetRoyalties(ctx ledger.TransactionContextInterface) (*big.Int, error) {
	bytes, err := ctx.GetState(constants.RoyaltiesKey)
	if err != nil {
		return nil, swifterr.ErrFailedToGetKey(constants.RoyaltiesKey)
	}
	if bytes == nil {
		return big.NewInt(0), nil
	}
	amount, ok := new(big.Int).SetString(string(bytes), 10)
	if !ok {
		return nil, swifterr.ErrConvertingAmountToBigInt(string(bytes))
	}
	return amount, nil
}

func AddRoyalties(ctx ledger.TransactionContextInterface, amount *big.Int) error {
	current, err := GetRoyalties(ctx)
	if err != nil {
		return err
	}
	next := new(big.Int).Add(current, amount)
	if err := ctx.PutStateWithoutKYC(constants.RoyaltiesKey, []byte(next.String())); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

func SubRoyalties(ctx ledger.TransactionContextInterface, amount *big.Int) error {
	current, err := GetRoyalties(ctx)
	if err != nil {
		return err
	}
	if current.Cmp(amount) < 0 {
		return fmt.Errorf("accumulated royalties %v below requested %v", current, amount)
	}
	next := new(big.Int).Sub(current, amount)
	if err := ctx.PutStateWithoutKYC(constants.RoyaltiesKey, []byte(next.String())); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

// ---- pause / emergency flags ----

func getBoolState(ctx ledger.TransactionContextInterface, key string) (bool, error) {
	bytes, err := ctx.GetState(key)
	if err != nil {
		return false, swifterr.ErrFailedToGetKey(key)
	}
	return bytes != nil && string(bytes) == "true", nil
}

func setBoolState(ctx ledger.TransactionContextInterface, key string, value bool) error {
	s := "false"
	if value {
		s = "true"
	}
	if err := ctx.PutStateWithoutKYC(key, []byte(s)); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

func IsPaused(ctx ledger.TransactionContextInterface) (bool, error) {
	return getBoolState(ctx, constants.PausedKey)
}

func SetPaused(ctx ledger.TransactionContextInterface, paused bool) error {
	return setBoolState(ctx, constants.PausedKey, paused)
}

func IsEmergencyStopped(ctx ledger.TransactionContextInterface) (bool, error) {
	return getBoolState(ctx, constants.EmergencyKey)
}

func SetEmergencyStopped(ctx ledger.TransactionContextInterface, stopped bool) error {
	return setBoolState(ctx, constants.EmergencyKey, stopped)
}

func WasPausedBeforeEmergency(ctx ledger.TransactionContextInterface) (bool, error) {
	return getBoolState(ctx, constants.PausedBeforeKey)
}

func SetPausedBeforeEmergency(ctx ledger.TransactionContextInterface, paused bool) error {
	return setBoolState(ctx, constants.PausedBeforeKey, paused)
}

func IsMevProtectionEnabled(ctx ledger.TransactionContextInterface) (bool, error) {
	return getBoolState(ctx, constants.MevProtectionKey)
}

func SetMevProtection(ctx ledger.TransactionContextInterface, enabled bool) error {
	return setBoolState(ctx, constants.MevProtectionKey, enabled)
}

func IsOwnershipRenounced(ctx ledger.TransactionContextInterface) (bool, error) {
	return getBoolState(ctx, constants.OwnershipRenouncedKey)
}

func SetOwnershipRenounced(ctx ledger.TransactionContextInterface) error {
	return setBoolState(ctx, constants.OwnershipRenouncedKey, true)
}

// ---- self address ----

// GetSelfAddress returns this contract's own klp address, captured from
// the signed proposal during initialization. The fee treasury account and
// the direct-call check both key off it.
func GetSelfAddress(ctx ledger.TransactionContextInterface) (string, error) {
	bytes, err := ctx.GetState(constants.SelfAddressKey)
	if err != nil {
		return "", swifterr.ErrFailedToGetKey(constants.SelfAddressKey)
	}
	if bytes == nil {
		return "", swifterr.New("contract address not recorded, contract not initialized", http.StatusInternalServerError)
	}
	return string(bytes), nil
}

func SetSelfAddress(ctx ledger.TransactionContextInterface, address string) error {
	if err := ctx.PutStateWithoutKYC(constants.SelfAddressKey, []byte(address)); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

// ---- rate limiter ----

func GetRateLimit(ctx ledger.TransactionContextInterface) (int64, error) {
	bytes, err := ctx.GetState(constants.RateLimitKey)
	if err != nil {
		return 0, swifterr.ErrFailedToGetKey(constants.RateLimitKey)
	}
	if bytes == nil {
		return constants.InitialRateLimit, nil
	}
	seconds, ok := new(big.Int).SetString(string(bytes), 10)
	if !ok {
		return 0, swifterr.New("invalid rate limit found: "+string(bytes), http.StatusInternalServerError)
	}
	return seconds.Int64(), nil
}

func SetRateLimit(ctx ledger.TransactionContextInterface, seconds int64) error {
	if err := ctx.PutStateWithoutKYC(constants.RateLimitKey, []byte(fmt.Sprintf("%d", seconds))); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

func getLastAction(ctx ledger.TransactionContextInterface, caller string) (int64, error) {
	key, err := ctx.CreateCompositeKey(constants.RateUsedPrefix, []string{caller})
	if err != nil {
		return 0, fmt.Errorf("failed to create composite key for rate limiter: %v", err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return 0, fmt.Errorf("failed to get rate limiter state: %v", err)
	}
	if bytes == nil {
		return 0, nil
	}
	last, ok := new(big.Int).SetString(string(bytes), 10)
	if !ok {
		return 0, swifterr.New("invalid rate limiter state: "+string(bytes), http.StatusInternalServerError)
	}
	return last.Int64(), nil
}

func setLastAction(ctx ledger.TransactionContextInterface, caller string, now int64) error {
	key, err := ctx.CreateCompositeKey(constants.RateUsedPrefix, []string{caller})
	if err != nil {
		return fmt.Errorf("failed to create composite key for rate limiter: %v", err)
	}
	if err := ctx.PutStateWithoutKYC(key, []byte(fmt.Sprintf("%d", now))); err != nil {
		return fmt.Errorf("failed to put rate limiter state: %v", err)
	}
	return nil
}

// RequireNotSuspended evaluates pause, emergency and blacklist checks in
// that fixed order.
func RequireNotSuspended(ctx ledger.TransactionContextInterface, caller string) error {
	if paused, err := IsPaused(ctx); err != nil {
		return err
	} else if paused {
		return swifterr.New("contract is paused", http.StatusForbidden)
	}
	if stopped, err := IsEmergencyStopped(ctx); err != nil {
		return err
	} else if stopped {
		return swifterr.New("emergency stop is active", http.StatusForbidden)
	}
	if denied, err := IsBlacklisted(ctx, caller); err != nil {
		return err
	} else if denied {
		return swifterr.ErrBlacklistedAddress(caller)
	}
	return nil
}

// RequireEntryAllowed runs the full gatekeeping chain for value-moving
// entry points: pause, emergency, blacklist, then the rate limiter, whose
// window is consumed on success.
func RequireEntryAllowed(ctx ledger.TransactionContextInterface, caller string) error {
	if err := RequireNotSuspended(ctx, caller); err != nil {
		return err
	}
	limit, err := GetRateLimit(ctx)
	if err != nil {
		return err
	}
	last, err := getLastAction(ctx, caller)
	if err != nil {
		return err
	}
	now, err := helper.TxTimestampSeconds(ctx)
	if err != nil {
		return err
	}
	if last != 0 && now < last+limit {
		return swifterr.New(fmt.Sprintf("rate limit in effect for caller %s, retry after %d", caller, last+limit), http.StatusTooManyRequests)
	}
	return setLastAction(ctx, caller, now)
}

// ---- recipient caps ----

func GetExtendedLimit(ctx ledger.TransactionContextInterface) (int, error) {
	bytes, err := ctx.GetState(constants.ExtendedLimitKey)
	if err != nil {
		return 0, swifterr.ErrFailedToGetKey(constants.ExtendedLimitKey)
	}
	if bytes == nil {
		return constants.InitialExtendedLimit, nil
	}
	limit, ok := new(big.Int).SetString(string(bytes), 10)
	if !ok {
		return 0, swifterr.New("invalid extended limit found: "+string(bytes), http.StatusInternalServerError)
	}
	return int(limit.Int64()), nil
}

func SetExtendedLimit(ctx ledger.TransactionContextInterface, limit int) error {
	if err := ctx.PutStateWithoutKYC(constants.ExtendedLimitKey, []byte(fmt.Sprintf("%d", limit))); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

func HasExtendedRecipientFlag(ctx ledger.TransactionContextInterface, account string) (bool, error) {
	key, err := ctx.CreateCompositeKey(constants.ExtendedPrefix, []string{account})
	if err != nil {
		return false, fmt.Errorf("failed to create composite key for recipient flag: %v", err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to get recipient flag: %v", err)
	}
	return bytes != nil && string(bytes) == "true", nil
}

func SetExtendedRecipientFlag(ctx ledger.TransactionContextInterface, account string, extended bool) error {
	key, err := ctx.CreateCompositeKey(constants.ExtendedPrefix, []string{account})
	if err != nil {
		return fmt.Errorf("failed to create composite key for recipient flag: %v", err)
	}
	value := "false"
	if extended {
		value = "true"
	}
	if err := ctx.PutStateWithoutKYC(key, []byte(value)); err != nil {
		return fmt.Errorf("failed to put recipient flag: %v", err)
	}
	return nil
}

// EffectiveRecipientLimit resolves the per-call recipient cap for an
// account: the configured extended cap if flagged, the default otherwise.
func EffectiveRecipientLimit(ctx ledger.TransactionContextInterface, account string) (int, error) {
	extended, err := HasExtendedRecipientFlag(ctx, account)
	if err != nil {
		return 0, err
	}
	if !extended {
		return constants.DefaultRecipientLimit, nil
	}
	return GetExtendedLimit(ctx)
}

// ---- commitments ----

func PutCommitment(ctx ledger.TransactionContextInterface, hash string, commitment models.Commitment) error {
	key, err := ctx.CreateCompositeKey(constants.CommitPrefix, []string{hash})
	if err != nil {
		return fmt.Errorf("failed to create composite key for commitment: %v", err)
	}
	commitmentJSON, err := json.Marshal(commitment)
	if err != nil {
		return fmt.Errorf("failed to marshal commitment: %v", err)
	}
	if err := ctx.PutStateWithoutKYC(key, commitmentJSON); err != nil {
		return fmt.Errorf("failed to put commitment: %v", err)
	}
	return nil
}

func GetCommitment(ctx ledger.TransactionContextInterface, hash string) (*models.Commitment, error) {
	key, err := ctx.CreateCompositeKey(constants.CommitPrefix, []string{hash})
	if err != nil {
		return nil, fmt.Errorf("failed to create composite key for commitment: %v", err)
	}
	bytes, err := ctx.GetState(key)
	if err != nil {
		return nil, fmt.Errorf("failed to get commitment: %v", err)
	}
	if bytes == nil {
		return nil, nil
	}
	var commitment models.Commitment
	if err := json.Unmarshal(bytes, &commitment); err != nil {
		return nil, fmt.Errorf("failed to unmarshal commitment: %v", err)
	}
	return &commitment, nil
}

func ConsumeCommitment(ctx ledger.TransactionContextInterface, hash string) error {
	key, err := ctx.CreateCompositeKey(constants.CommitPrefix, []string{hash})
	if err != nil {
		return fmt.Errorf("failed to create composite key for commitment: %v", err)
	}
	if err := ctx.DelStateWithoutKYC(key); err != nil {
		return swifterr.ErrFailedToDeleteState(err)
	}
	return nil
}

// ---- withdrawal request ----

func GetWithdrawalRequest(ctx ledger.TransactionContextInterface) (*models.WithdrawalRequest, error) {
	bytes, err := ctx.GetState(constants.WithdrawalKey)
	if err != nil {
		return nil, swifterr.ErrFailedToGetKey(constants.WithdrawalKey)
	}
	if bytes == nil {
		return nil, nil
	}
	var request models.WithdrawalRequest
	if err := json.Unmarshal(bytes, &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal withdrawal request: %v", err)
	}
	return &request, nil
}

func PutWithdrawalRequest(ctx ledger.TransactionContextInterface, request models.WithdrawalRequest) error {
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("failed to marshal withdrawal request: %v", err)
	}
	if err := ctx.PutStateWithoutKYC(constants.WithdrawalKey, requestJSON); err != nil {
		return swifterr.ErrFailedToPutState(err)
	}
	return nil
}

func ClearWithdrawalRequest(ctx ledger.TransactionContextInterface) error {
	if err := ctx.DelStateWithoutKYC(constants.WithdrawalKey); err != nil {
		return swifterr.ErrFailedToDeleteState(err)
	}
	return nil
}

// ---- called-contract detection ----

// GetCalledContractAddress digs the invoked contract address out of the
// signed proposal, so entry points can tell a direct client call from one
// routed through another contract.
func GetCalledContractAddress(ctx ledger.TransactionContextInterface) (string, error) {
	signedProposal, e := ctx.GetSignedProposal()
	if signedProposal == nil {
		err := swifterr.New("could not retrieve signed proposal", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}
	if e != nil {
		err := swifterr.NewInternalError(e, "error in getting signed proposal", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}

	data := signedProposal.GetProposalBytes()
	if data == nil {
		err := swifterr.New("error in fetching proposal bytes", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}

	proposal := &peer.Proposal{}
	if e := proto.Unmarshal(data, proposal); e != nil {
		err := swifterr.NewInternalError(e, "error in parsing signed proposal", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}

	payload := &common.Payload{}
	if e := proto.Unmarshal(proposal.Payload, payload); e != nil {
		err := swifterr.NewInternalError(e, "error in parsing payload", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}

	paystring := payload.GetHeader().GetChannelHeader()
	if len(paystring) == 0 {
		err := swifterr.New("channel header is empty", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}

	contractAddress := helper.FindContractAddress(helper.FilterPrintableASCII(string(paystring)))
	if contractAddress == "" {
		err := swifterr.New("contract address not found", http.StatusInternalServerError)
		logger.Log.Error(err.FullError())
		return "", err
	}
	return contractAddress, nil
}
