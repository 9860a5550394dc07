package constants

const (
	// State keys.
	NameKey               = "name"
	OwnerKey              = "owner"
	PendingOwnerKey       = "pendingOwner"
	TaxFeeKey             = "taxFee"
	RateLimitKey          = "rateLimit"
	ExtendedLimitKey      = "extendedRecipientLimit"
	PausedKey             = "paused"
	EmergencyKey          = "emergencyStop"
	EmergencyReasonKey    = "emergencyReason"
	PausedBeforeKey       = "pausedBeforeEmergency"
	RoyaltiesKey          = "accumulatedRoyalties"
	WithdrawalKey         = "pendingWithdrawal"
	MevProtectionKey      = "useMevProtection"
	OwnershipRenouncedKey = "ownershipRenounced"
	SelfAddressKey        = "selfAddress"

	// Composite key prefixes.
	UserRolePrefix  = "ID~UserRoleMap"
	BalancePrefix   = "NativeBalance"
	DenyListKey     = "denyList"
	WhitelistPrefix = "assetWhitelist"
	RateUsedPrefix  = "lastAction"
	ExtendedPrefix  = "extendedLimit"
	CommitPrefix    = "commitment"

	// Doc types.
	UserRoleMap   = "UserRoleMap"
	BalanceDoc    = "NativeBalance"
	WithdrawalDoc = "WithdrawalRequest"
	CommitmentDoc = "Commitment"

	// Roles.
	RoleOwner     = "Owner"
	RoleAdmin     = "Admin"
	RoleModerator = "Moderator"

	MaxAdmins     = 3
	MaxModerators = 10

	// Asset classes for the whitelist.
	ClassFungible    = "fungible"
	ClassNonFungible = "nonfungible"
	ClassMultiToken  = "multitoken"

	// Treasury withdrawal kinds. Token withdrawals reuse the asset class
	// names.
	WithdrawKindRoyalty = "royalty"
	WithdrawKindGeneral = "general"

	// Fee bounds (native units, decimal strings).
	InitialTaxFee = "1000000000000"
	MinTaxFee     = "1000000000"
	MaxTaxFee     = "100000000000000"

	// Rate limit bounds (seconds).
	InitialRateLimit = 30
	MinRateLimit     = 10
	MaxRateLimit     = 3600

	// Recipient caps.
	DefaultRecipientLimit = 15
	InitialExtendedLimit  = 20
	MinExtendedLimit      = 16
	MaxExtendedLimit      = 30

	// Treasury withdrawal timelock (seconds).
	WithdrawalDelay = 86400

	// Commit-reveal window (seconds).
	CommitmentWindow = 300

	// Consecutive sub-transfer failures before the emergency stop engages
	// on an owner-initiated batch.
	FailureThreshold = 3

	// Native supply minted to the deployer at initialization.
	InitialSupply = "2000000000000000000000000000"

	// Event names.
	EventRoleGranted          = "RoleGranted"
	EventRoleRevoked          = "RoleRevoked"
	EventBlacklisted          = "Blacklisted"
	EventUnblacklisted        = "Unblacklisted"
	EventAssetWhitelisted     = "AssetWhitelisted"
	EventAssetUnwhitelisted   = "AssetUnwhitelisted"
	EventTaxFeeUpdated        = "TaxFeeUpdated"
	EventRateLimitUpdated     = "RateLimitUpdated"
	EventRecipientLimit       = "RecipientLimitUpdated"
	EventPaused               = "Paused"
	EventUnpaused             = "Unpaused"
	EventEmergencyStopped     = "EmergencyStopped"
	EventEmergencyLifted      = "EmergencyLifted"
	EventBatchTransfer        = "BatchTransfer"
	EventTransferFailed       = "TransferFailed"
	EventWithdrawalRequested  = "WithdrawalRequested"
	EventWithdrawalCancelled  = "WithdrawalCancelled"
	EventWithdrawalCompleted  = "WithdrawalCompleted"
	EventOwnershipPending     = "OwnershipTransferStarted"
	EventOwnershipTransferred = "OwnershipTransferred"
	EventOwnershipRenounced   = "OwnershipRenounced"

	// Address shapes on the Kalp network.
	UserAddressRegex       = `^[0-9a-fA-F]{40}$`
	IsContractAddressRegex = `^klp-[a-fA-F0-9]+-cc$`
	ContractAddressRegex   = `klp-[a-fA-F0-9]+-cc`

	// Channel used for cross-contract token invocations.
	TokenChannel = "kalptantra"
)
