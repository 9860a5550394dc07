package helper

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/swifterr"
)

var (
	userAddressRe     = regexp.MustCompile(constants.UserAddressRegex)
	contractAddressRe = regexp.MustCompile(constants.IsContractAddressRegex)
	embeddedAddressRe = regexp.MustCompile(constants.ContractAddressRegex)
)

func IsUserAddress(address string) bool {
	return userAddressRe.MatchString(address)
}

// IsZeroAddress reports whether the address is the all-zero placeholder,
// which is never an acceptable party to anything.
func IsZeroAddress(address string) bool {
	return address == strings.Repeat("0", 40)
}

func IsContractAddress(address string) bool {
	return contractAddressRe.MatchString(address)
}

func IsValidAddress(address string) bool {
	return IsUserAddress(address) || IsContractAddress(address)
}

// FindContractAddress extracts the first embedded contract address from a
// channel header blob.
func FindContractAddress(data string) string {
	return embeddedAddressRe.FindString(data)
}

func FilterPrintableASCII(input string) string {
	var result []rune
	for _, char := range input {
		if char >= 33 && char <= 127 {
			result = append(result, char)
		}
	}
	return string(result)
}

// GetUserId extracts the signer's address from the x509 client identity.
func GetUserId(ctx ledger.TransactionContextInterface) (string, error) {
	b64ID, err := ctx.GetClientIdentity().GetID()
	if err != nil {
		return "", fmt.Errorf("failed to read clientID: %v", err)
	}

	decodeID, err := base64.StdEncoding.DecodeString(b64ID)
	if err != nil {
		return "", fmt.Errorf("failed to base64 decode clientID: %v", err)
	}

	completeId := string(decodeID)
	cn := strings.Index(completeId, "x509::CN=")
	comma := strings.Index(completeId, ",")
	if cn < 0 || comma < 0 || comma <= cn+9 {
		return "", fmt.Errorf("unexpected client identity format: %s", completeId)
	}
	userId := completeId[cn+9 : comma]

	if !IsUserAddress(userId) {
		return "", swifterr.ErrInvalidUserAddress(userId)
	}
	return userId, nil
}

func IsAmountProper(amount string) bool {
	bigAmount, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return false
	}
	return bigAmount.Sign() >= 0
}

// ParsePositiveAmount parses a decimal string that must be strictly
// greater than zero.
func ParsePositiveAmount(amount string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, swifterr.ErrConvertingAmountToBigInt(amount)
	}
	if v.Sign() != 1 {
		return nil, swifterr.ErrInvalidAmount(amount)
	}
	return v, nil
}

// ParseNonNegativeAmount parses a decimal string that may be zero.
func ParseNonNegativeAmount(amount string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, swifterr.ErrConvertingAmountToBigInt(amount)
	}
	if v.Sign() < 0 {
		return nil, swifterr.ErrInvalidAmount(amount)
	}
	return v, nil
}

// TxTimestampSeconds returns the transaction timestamp in unix seconds.
func TxTimestampSeconds(ctx ledger.TransactionContextInterface) (int64, error) {
	ts, err := ctx.GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction timestamp: %v", err)
	}
	return ts.AsTime().Unix(), nil
}

// CommitmentHash derives the commit-reveal digest over the ordered
// transfer parameters. The separator keeps adjacent fields from gluing
// into the same preimage.
func CommitmentHash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
