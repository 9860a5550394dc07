package chaincode

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/events"
	"swift-contract/chaincode/helper"
	"swift-contract/chaincode/internal"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/logger"
	"swift-contract/chaincode/swifterr"

	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
	"golang.org/x/exp/slices"
)

// SmartContract is the TransferSWIFT protocol: fee-gated batch transfers
// of native, fungible, non-fungible and multi-token assets with a
// timelocked fee treasury.
type SmartContract struct {
	kalpsdk.Contract
}

var assetClasses = []string{constants.ClassFungible, constants.ClassNonFungible, constants.ClassMultiToken}

func (s *SmartContract) Initialize(ctx ledger.TransactionContextInterface, name string) (bool, error) {
	logger.Log.Infoln("Initializing smart contract... with arguments", name)

	signer, err := helper.GetUserId(ctx)
	if err != nil {
		return false, err
	}

	if bytes, e := ctx.GetState(constants.NameKey); e != nil {
		return false, swifterr.ErrFailedToGetKey(constants.NameKey)
	} else if bytes != nil {
		return false, swifterr.New(fmt.Sprintf("cannot initialize again, %s already set: %s", constants.NameKey, string(bytes)), http.StatusBadRequest)
	}

	if e := ctx.PutStateWithoutKYC(constants.NameKey, []byte(name)); e != nil {
		err := swifterr.NewInternalError(e, "failed to set contract name: "+name, http.StatusInternalServerError)
		logger.Log.Errorf(err.FullError())
		return false, err
	}
	if err := internal.SetOwner(ctx, signer); err != nil {
		return false, err
	}
	// Initialization is always a direct client call, so the proposal's
	// channel header carries this contract's own address.
	selfAddress, err := internal.GetCalledContractAddress(ctx)
	if err != nil {
		return false, err
	}
	if err := internal.SetSelfAddress(ctx, selfAddress); err != nil {
		return false, err
	}
	// The deployer is the first admin; the registry may never drop back
	// to zero admins while ownership stands.
	if err := internal.SetUserRole(ctx, signer, constants.RoleAdmin); err != nil {
		return false, err
	}
	if e := ctx.PutStateWithoutKYC(constants.TaxFeeKey, []byte(constants.InitialTaxFee)); e != nil {
		err := swifterr.NewInternalError(e, "failed to set tax fee: "+constants.InitialTaxFee, http.StatusInternalServerError)
		logger.Log.Errorf(err.FullError())
		return false, err
	}
	if err := internal.SetRateLimit(ctx, constants.InitialRateLimit); err != nil {
		return false, err
	}
	if err := internal.SetExtendedLimit(ctx, constants.InitialExtendedLimit); err != nil {
		return false, err
	}

	supply, ok := new(big.Int).SetString(constants.InitialSupply, 10)
	if !ok {
		return false, swifterr.ErrConvertingAmountToBigInt(constants.InitialSupply)
	}
	if err := internal.AddBalance(ctx, signer, supply); err != nil {
		return false, err
	}

	logger.Log.Infoln("Initialize invoked complete")
	return true, nil
}

// requireOwner gates root-role mutations.
func requireOwner(ctx ledger.TransactionContextInterface) (string, error) {
	signer, isOwner, err := internal.IsSignerOwner(ctx)
	if err != nil {
		return "", err
	}
	if !isOwner {
		return "", swifterr.ErrUnauthorized(constants.RoleOwner)
	}
	return signer, nil
}

// requireAdmin accepts the owner or any admin.
func requireAdmin(ctx ledger.TransactionContextInterface) (string, error) {
	signer, isOwner, err := internal.IsSignerOwner(ctx)
	if err != nil {
		return "", err
	}
	if isOwner {
		return signer, nil
	}
	role, err := internal.GetUserRole(ctx, signer)
	if err != nil {
		return "", err
	}
	if role != constants.RoleAdmin {
		return "", swifterr.ErrUnauthorized(constants.RoleAdmin)
	}
	return signer, nil
}

// requireModerator accepts the owner, admins and moderators.
func requireModerator(ctx ledger.TransactionContextInterface) (string, error) {
	signer, isOwner, err := internal.IsSignerOwner(ctx)
	if err != nil {
		return "", err
	}
	if isOwner {
		return signer, nil
	}
	role, err := internal.GetUserRole(ctx, signer)
	if err != nil {
		return "", err
	}
	if role != constants.RoleAdmin && role != constants.RoleModerator {
		return "", swifterr.ErrUnauthorized(constants.RoleModerator)
	}
	return signer, nil
}

// ---- fee configuration ----

func (s *SmartContract) TaxFee(ctx ledger.TransactionContextInterface) (string, error) {
	bytes, err := ctx.GetState(constants.TaxFeeKey)
	if err != nil {
		return "", swifterr.ErrFailedToGetKey(constants.TaxFeeKey)
	}
	if bytes == nil {
		return "", swifterr.New("tax fee not set", http.StatusInternalServerError)
	}
	return string(bytes), nil
}

func (s *SmartContract) SetTaxFee(ctx ledger.TransactionContextInterface, newFee string) error {
	logger.Log.Infoln("SetTaxFee... with arguments", newFee)

	if _, err := requireAdmin(ctx); err != nil {
		return err
	}
	fee, err := helper.ParsePositiveAmount(newFee)
	if err != nil {
		return err
	}
	minFee, _ := new(big.Int).SetString(constants.MinTaxFee, 10)
	maxFee, _ := new(big.Int).SetString(constants.MaxTaxFee, 10)
	if fee.Cmp(minFee) < 0 || fee.Cmp(maxFee) > 0 {
		return swifterr.New(fmt.Sprintf("tax fee %s outside allowed bounds [%s, %s]", newFee, constants.MinTaxFee, constants.MaxTaxFee), http.StatusBadRequest)
	}
	oldFee, err := s.TaxFee(ctx)
	if err != nil {
		return err
	}
	if e := ctx.PutStateWithoutKYC(constants.TaxFeeKey, []byte(fee.String())); e != nil {
		err := swifterr.ErrFailedToPutState(e)
		logger.Log.Error(err.FullError())
		return err
	}
	return events.EmitTaxFeeUpdated(ctx, oldFee, fee.String())
}

func (s *SmartContract) RateLimit(ctx ledger.TransactionContextInterface) (string, error) {
	seconds, err := internal.GetRateLimit(ctx)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(seconds, 10), nil
}

func (s *SmartContract) SetRateLimit(ctx ledger.TransactionContextInterface, seconds string) error {
	logger.Log.Infoln("SetRateLimit... with arguments", seconds)

	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	duration, err := strconv.ParseInt(seconds, 10, 64)
	if err != nil {
		return swifterr.New("invalid rate limit duration: "+seconds, http.StatusBadRequest)
	}
	if duration < constants.MinRateLimit || duration > constants.MaxRateLimit {
		return swifterr.New(fmt.Sprintf("rate limit %d outside allowed bounds [%d, %d]", duration, constants.MinRateLimit, constants.MaxRateLimit), http.StatusBadRequest)
	}
	if err := internal.SetRateLimit(ctx, duration); err != nil {
		return err
	}
	return events.EmitRateLimitUpdated(ctx, duration)
}

// ---- recipient caps ----

func (s *SmartContract) UpdateRecipientLimit(ctx ledger.TransactionContextInterface, n string) error {
	logger.Log.Infoln("UpdateRecipientLimit... with arguments", n)

	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	limit, err := strconv.Atoi(n)
	if err != nil {
		return swifterr.New("invalid recipient limit: "+n, http.StatusBadRequest)
	}
	if limit < constants.MinExtendedLimit || limit > constants.MaxExtendedLimit {
		return swifterr.New(fmt.Sprintf("recipient limit %d outside allowed bounds [%d, %d]", limit, constants.MinExtendedLimit, constants.MaxExtendedLimit), http.StatusBadRequest)
	}
	if err := internal.SetExtendedLimit(ctx, limit); err != nil {
		return err
	}
	return events.EmitRecipientLimitUpdated(ctx, "", true, limit)
}

func (s *SmartContract) SetMaxRecipients(ctx ledger.TransactionContextInterface, account string) error {
	logger.Log.Infoln("SetMaxRecipients... with arguments", account)

	if _, err := requireModerator(ctx); err != nil {
		return err
	}
	if !helper.IsUserAddress(account) {
		return swifterr.ErrInvalidUserAddress(account)
	}
	if err := internal.SetExtendedRecipientFlag(ctx, account, true); err != nil {
		return err
	}
	limit, err := internal.GetExtendedLimit(ctx)
	if err != nil {
		return err
	}
	return events.EmitRecipientLimitUpdated(ctx, account, true, limit)
}

func (s *SmartContract) SetDefaultRecipients(ctx ledger.TransactionContextInterface, account string) error {
	logger.Log.Infoln("SetDefaultRecipients... with arguments", account)

	if _, err := requireModerator(ctx); err != nil {
		return err
	}
	if !helper.IsUserAddress(account) {
		return swifterr.ErrInvalidUserAddress(account)
	}
	if err := internal.SetExtendedRecipientFlag(ctx, account, false); err != nil {
		return err
	}
	return events.EmitRecipientLimitUpdated(ctx, account, false, constants.DefaultRecipientLimit)
}

func (s *SmartContract) EffectiveRecipientLimit(ctx ledger.TransactionContextInterface, account string) (string, error) {
	limit, err := internal.EffectiveRecipientLimit(ctx, account)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(limit), nil
}

// ---- pause & emergency stop ----

func (s *SmartContract) Paused(ctx ledger.TransactionContextInterface) (bool, error) {
	return internal.IsPaused(ctx)
}

func (s *SmartContract) EmergencyStopped(ctx ledger.TransactionContextInterface) (bool, error) {
	return internal.IsEmergencyStopped(ctx)
}

func (s *SmartContract) Pause(ctx ledger.TransactionContextInterface) error {
	signer, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if paused, err := internal.IsPaused(ctx); err != nil {
		return err
	} else if paused {
		return swifterr.New("contract is already paused", http.StatusBadRequest)
	}
	if err := internal.SetPaused(ctx, true); err != nil {
		return err
	}
	return events.EmitPaused(ctx, signer)
}

func (s *SmartContract) Unpause(ctx ledger.TransactionContextInterface) error {
	signer, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if stopped, err := internal.IsEmergencyStopped(ctx); err != nil {
		return err
	} else if stopped {
		return swifterr.New("cannot unpause while emergency stop is active", http.StatusForbidden)
	}
	if paused, err := internal.IsPaused(ctx); err != nil {
		return err
	} else if !paused {
		return swifterr.New("contract is not paused", http.StatusBadRequest)
	}
	if err := internal.SetPaused(ctx, false); err != nil {
		return err
	}
	return events.EmitUnpaused(ctx, signer)
}

func (s *SmartContract) EmergencyStop(ctx ledger.TransactionContextInterface, reason string) error {
	logger.Log.Infoln("EmergencyStop... with arguments", reason)

	signer, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if stopped, err := internal.IsEmergencyStopped(ctx); err != nil {
		return err
	} else if stopped {
		return swifterr.New("emergency stop is already active", http.StatusBadRequest)
	}
	paused, err := internal.IsPaused(ctx)
	if err != nil {
		return err
	}
	// Remember the prior pause state so lifting restores instead of
	// force-unpausing.
	if err := internal.SetPausedBeforeEmergency(ctx, paused); err != nil {
		return err
	}
	if err := internal.SetPaused(ctx, true); err != nil {
		return err
	}
	if err := internal.SetEmergencyStopped(ctx, true); err != nil {
		return err
	}
	if e := ctx.PutStateWithoutKYC(constants.EmergencyReasonKey, []byte(reason)); e != nil {
		return swifterr.ErrFailedToPutState(e)
	}
	return events.EmitEmergencyStopped(ctx, signer, reason)
}

func (s *SmartContract) LiftEmergencyStop(ctx ledger.TransactionContextInterface) error {
	signer, err := requireAdmin(ctx)
	if err != nil {
		return err
	}
	if stopped, err := internal.IsEmergencyStopped(ctx); err != nil {
		return err
	} else if !stopped {
		return swifterr.New("emergency stop is not active", http.StatusBadRequest)
	}
	wasPaused, err := internal.WasPausedBeforeEmergency(ctx)
	if err != nil {
		return err
	}
	if err := internal.SetPaused(ctx, wasPaused); err != nil {
		return err
	}
	if err := internal.SetEmergencyStopped(ctx, false); err != nil {
		return err
	}
	if e := ctx.PutStateWithoutKYC(constants.EmergencyReasonKey, []byte("")); e != nil {
		return swifterr.ErrFailedToPutState(e)
	}
	return events.EmitEmergencyLifted(ctx, signer)
}

// ---- blacklist ----

func (s *SmartContract) AddToBlacklist(ctx ledger.TransactionContextInterface, address string) error {
	logger.Log.Infof("AddToBlacklist invoked for address: %s", address)

	signer, err := requireModerator(ctx)
	if err != nil {
		return err
	}
	return s.blacklistOne(ctx, signer, address)
}

func (s *SmartContract) blacklistOne(ctx ledger.TransactionContextInterface, signer, address string) error {
	if !helper.IsValidAddress(address) {
		return swifterr.ErrInvalidAddress(address)
	}
	owner, err := internal.GetOwner(ctx)
	if err != nil {
		return err
	}
	if address == owner {
		return swifterr.New("owner cannot be blacklisted", http.StatusBadRequest)
	}
	if role, err := internal.GetUserRole(ctx, address); err != nil {
		return err
	} else if role == constants.RoleAdmin {
		return swifterr.New("admin cannot be blacklisted", http.StatusBadRequest)
	}
	if denied, err := internal.IsBlacklisted(ctx, address); err != nil {
		return err
	} else if denied {
		return swifterr.ErrAlreadyBlacklisted(address)
	}
	if err := internal.BlacklistAddress(ctx, address); err != nil {
		return err
	}
	return events.EmitBlacklisted(ctx, address, signer)
}

func (s *SmartContract) RemoveFromBlacklist(ctx ledger.TransactionContextInterface, address string) error {
	logger.Log.Infof("RemoveFromBlacklist invoked for address: %s", address)

	signer, err := requireModerator(ctx)
	if err != nil {
		return err
	}
	return s.unblacklistOne(ctx, signer, address)
}

func (s *SmartContract) unblacklistOne(ctx ledger.TransactionContextInterface, signer, address string) error {
	if denied, err := internal.IsBlacklisted(ctx, address); err != nil {
		return err
	} else if !denied {
		return swifterr.ErrNotBlacklisted(address)
	}
	if err := internal.UnblacklistAddress(ctx, address); err != nil {
		return err
	}
	return events.EmitUnblacklisted(ctx, address, signer)
}

// AddToBlacklistBatch takes a JSON array of addresses.
func (s *SmartContract) AddToBlacklistBatch(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("AddToBlacklistBatch invoked.... with arguments", data)

	signer, err := requireModerator(ctx)
	if err != nil {
		return err
	}
	var addresses []string
	if e := json.Unmarshal([]byte(data), &addresses); e != nil {
		return fmt.Errorf("failed to parse data: %v", e)
	}
	if len(addresses) == 0 {
		return swifterr.New("no addresses passed", http.StatusBadRequest)
	}
	for _, address := range addresses {
		if err := s.blacklistOne(ctx, signer, address); err != nil {
			return err
		}
	}
	return nil
}

func (s *SmartContract) RemoveFromBlacklistBatch(ctx ledger.TransactionContextInterface, data string) error {
	logger.Log.Infoln("RemoveFromBlacklistBatch invoked.... with arguments", data)

	signer, err := requireModerator(ctx)
	if err != nil {
		return err
	}
	var addresses []string
	if e := json.Unmarshal([]byte(data), &addresses); e != nil {
		return fmt.Errorf("failed to parse data: %v", e)
	}
	if len(addresses) == 0 {
		return swifterr.New("no addresses passed", http.StatusBadRequest)
	}
	for _, address := range addresses {
		if err := s.unblacklistOne(ctx, signer, address); err != nil {
			return err
		}
	}
	return nil
}

func (s *SmartContract) IsBlacklisted(ctx ledger.TransactionContextInterface, address string) (bool, error) {
	return internal.IsBlacklisted(ctx, address)
}

// ---- asset whitelist ----

func (s *SmartContract) WhitelistAsset(ctx ledger.TransactionContextInterface, class string, asset string) error {
	logger.Log.Infoln("WhitelistAsset invoked.... with arguments", class, asset)

	signer, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	return s.whitelistOne(ctx, signer, class, asset)
}

func (s *SmartContract) whitelistOne(ctx ledger.TransactionContextInterface, signer, class, asset string) error {
	if !slices.Contains(assetClasses, class) {
		return swifterr.New("invalid asset class: "+class, http.StatusBadRequest)
	}
	if !helper.IsContractAddress(asset) {
		return swifterr.ErrInvalidContractAddress(asset)
	}
	if approved, err := internal.IsWhitelisted(ctx, class, asset); err != nil {
		return err
	} else if approved {
		return swifterr.New(fmt.Sprintf("%s asset already whitelisted: %s", class, asset), http.StatusBadRequest)
	}
	if err := internal.SetWhitelisted(ctx, class, asset, true); err != nil {
		return err
	}
	return events.EmitAssetWhitelisted(ctx, class, asset, signer)
}

func (s *SmartContract) RemoveWhitelistedAsset(ctx ledger.TransactionContextInterface, class string, asset string) error {
	logger.Log.Infoln("RemoveWhitelistedAsset invoked.... with arguments", class, asset)

	signer, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	return s.unwhitelistOne(ctx, signer, class, asset)
}

func (s *SmartContract) unwhitelistOne(ctx ledger.TransactionContextInterface, signer, class, asset string) error {
	if approved, err := internal.IsWhitelisted(ctx, class, asset); err != nil {
		return err
	} else if !approved {
		return swifterr.ErrNotWhitelisted(class, asset)
	}
	if err := internal.SetWhitelisted(ctx, class, asset, false); err != nil {
		return err
	}
	return events.EmitAssetUnwhitelisted(ctx, class, asset, signer)
}

// WhitelistAssetBatch takes a JSON array of contract addresses for one
// asset class.
func (s *SmartContract) WhitelistAssetBatch(ctx ledger.TransactionContextInterface, class string, data string) error {
	logger.Log.Infoln("WhitelistAssetBatch invoked.... with arguments", class, data)

	signer, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	var assets []string
	if e := json.Unmarshal([]byte(data), &assets); e != nil {
		return fmt.Errorf("failed to parse data: %v", e)
	}
	if len(assets) == 0 {
		return swifterr.New("no assets passed", http.StatusBadRequest)
	}
	for _, asset := range assets {
		if err := s.whitelistOne(ctx, signer, class, asset); err != nil {
			return err
		}
	}
	return nil
}

// RemoveWhitelistedAssetBatch takes a JSON array of contract addresses for
// one asset class.
func (s *SmartContract) RemoveWhitelistedAssetBatch(ctx ledger.TransactionContextInterface, class string, data string) error {
	logger.Log.Infoln("RemoveWhitelistedAssetBatch invoked.... with arguments", class, data)

	signer, err := requireOwner(ctx)
	if err != nil {
		return err
	}
	var assets []string
	if e := json.Unmarshal([]byte(data), &assets); e != nil {
		return fmt.Errorf("failed to parse data: %v", e)
	}
	if len(assets) == 0 {
		return swifterr.New("no assets passed", http.StatusBadRequest)
	}
	for _, asset := range assets {
		if err := s.unwhitelistOne(ctx, signer, class, asset); err != nil {
			return err
		}
	}
	return nil
}

func (s *SmartContract) IsWhitelisted(ctx ledger.TransactionContextInterface, class string, asset string) (bool, error) {
	return internal.IsWhitelisted(ctx, class, asset)
}

// ---- MEV protection toggle ----

func (s *SmartContract) SetMevProtection(ctx ledger.TransactionContextInterface, enabled string) error {
	logger.Log.Infoln("SetMevProtection... with arguments", enabled)

	if _, err := requireOwner(ctx); err != nil {
		return err
	}
	value, err := strconv.ParseBool(enabled)
	if err != nil {
		return swifterr.New("invalid flag value: "+enabled, http.StatusBadRequest)
	}
	return internal.SetMevProtection(ctx, value)
}

// ---- views ----

func (s *SmartContract) Name(ctx ledger.TransactionContextInterface) (string, error) {
	bytes, err := ctx.GetState(constants.NameKey)
	if err != nil {
		return "", swifterr.ErrFailedToGetKey(constants.NameKey)
	}
	return string(bytes), nil
}

func (s *SmartContract) Owner(ctx ledger.TransactionContextInterface) (string, error) {
	return internal.GetOwner(ctx)
}

func (s *SmartContract) BalanceOf(ctx ledger.TransactionContextInterface, account string) (string, error) {
	if !helper.IsValidAddress(account) {
		return "0", swifterr.ErrInvalidAddress(account)
	}
	balance, err := internal.GetBalance(ctx, account)
	if err != nil {
		return "0", fmt.Errorf("error fetching balance: %v", err)
	}
	return balance.String(), nil
}

func (s *SmartContract) AccumulatedRoyalties(ctx ledger.TransactionContextInterface) (string, error) {
	royalties, err := internal.GetRoyalties(ctx)
	if err != nil {
		return "0", err
	}
	return royalties.String(), nil
}

func (s *SmartContract) RolesOf(ctx ledger.TransactionContextInterface, account string) (string, error) {
	owner, err := internal.GetOwner(ctx)
	if err != nil {
		return "", err
	}
	role, err := internal.GetUserRole(ctx, account)
	if err != nil {
		return "", err
	}
	if owner != "" && account == owner {
		if role != "" {
			return constants.RoleOwner + "," + role, nil
		}
		return constants.RoleOwner, nil
	}
	return role, nil
}

// PendingWithdrawal returns the active withdrawal request as JSON, or an
// empty string when none is outstanding.
func (s *SmartContract) PendingWithdrawal(ctx ledger.TransactionContextInterface) (string, error) {
	request, err := internal.GetWithdrawalRequest(ctx)
	if err != nil {
		return "", err
	}
	if request == nil {
		return "", nil
	}
	bytes, e := json.Marshal(request)
	if e != nil {
		return "", swifterr.NewInternalError(e, "failed to marshal withdrawal request", http.StatusInternalServerError)
	}
	return string(bytes), nil
}
