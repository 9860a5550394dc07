package models

// TransferKind is the closed set of asset kinds the batch engine moves.
type TransferKind int

const (
	KindNative TransferKind = iota
	KindFungible
	KindNonFungible
	KindMultiToken
)

func (k TransferKind) String() string {
	switch k {
	case KindNative:
		return "native"
	case KindFungible:
		return "fungible"
	case KindNonFungible:
		return "nonfungible"
	case KindMultiToken:
		return "multitoken"
	}
	return "unknown"
}

type UserRole struct {
	Id      string `json:"user"`
	Role    string `json:"role"`
	DocType string `json:"docType"`
}

type Balance struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
	DocType string `json:"docType"`
}

// WithdrawalRequest is the singleton pending treasury withdrawal.
type WithdrawalRequest struct {
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Asset       string `json:"asset,omitempty"`
	TokenId     string `json:"tokenId,omitempty"`
	RequestTime int64  `json:"requestTime"`
	Cancelled   bool   `json:"cancelled"`
	DocType     string `json:"docType"`
}

// Commitment records a commit-reveal preimage hash holder. Stale entries
// are never deleted; they simply fall outside the reveal window.
type Commitment struct {
	Sender     string `json:"sender"`
	CommitTime int64  `json:"commitTime"`
	DocType    string `json:"docType"`
}

// Entry-point payloads. Parallel-array shape checks beyond what the tags
// express live in the transfer engine.

type NativeTransferInput struct {
	Recipients []string `json:"recipients" validate:"required,min=1,max=30,dive,required"`
	Amounts    []string `json:"amounts" validate:"required,min=1,max=30,dive,required"`
	Value      string   `json:"value" validate:"required"`
}

type FungibleTransferInput struct {
	Token      string   `json:"token" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,max=30,dive,required"`
	Amounts    []string `json:"amounts" validate:"required,min=1,max=30,dive,required"`
	Value      string   `json:"value" validate:"required"`
}

type NFTTransferInput struct {
	Token      string   `json:"token" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,max=30,dive,required"`
	TokenIds   []string `json:"tokenIds" validate:"required,min=1,max=30,dive,required"`
	Value      string   `json:"value" validate:"required"`
}

type MultiTokenTransferInput struct {
	Token      string   `json:"token" validate:"required"`
	Recipients []string `json:"recipients" validate:"required,min=1,max=30,dive,required"`
	TokenIds   []string `json:"tokenIds" validate:"required,min=1,max=30,dive,required"`
	Amounts    []string `json:"amounts" validate:"required,min=1,max=30,dive,required"`
	Value      string   `json:"value" validate:"required"`
}

type WithdrawalInput struct {
	Amount  string `json:"amount" validate:"required"`
	Kind    string `json:"kind" validate:"required"`
	Asset   string `json:"asset,omitempty"`
	TokenId string `json:"tokenId,omitempty"`
}
