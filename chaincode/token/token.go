// Package token wraps cross-contract invocations of the external asset
// contracts the batch engine moves: fungible, non-fungible and
// multi-token. Each client speaks the standard balance / ownership /
// transfer surface of its class and treats a non-OK response or a false
// payload as a failed sub-transfer.
package token

import (
	"math/big"
	"net/http"
	"strings"

	"swift-contract/chaincode/constants"
	"swift-contract/chaincode/ledger"
	"swift-contract/chaincode/swifterr"
)

type client struct {
	address string
	channel string
}

func (c client) invoke(ctx ledger.TransactionContextInterface, args ...string) ([]byte, error) {
	raw := make([][]byte, len(args))
	for i, a := range args {
		raw[i] = []byte(a)
	}
	resp := ctx.InvokeChaincode(c.address, raw, c.channel)
	if resp.Status != http.StatusOK {
		return nil, swifterr.New("asset contract "+c.address+" rejected "+args[0]+": "+resp.Message, http.StatusBadGateway)
	}
	return resp.Payload, nil
}

func (c client) invokeBool(ctx ledger.TransactionContextInterface, args ...string) error {
	payload, err := c.invoke(ctx, args...)
	if err != nil {
		return err
	}
	if strings.TrimSpace(string(payload)) == "false" {
		return swifterr.New("asset contract "+c.address+" returned false for "+args[0], http.StatusBadGateway)
	}
	return nil
}

func (c client) invokeAmount(ctx ledger.TransactionContextInterface, args ...string) (*big.Int, error) {
	payload, err := c.invoke(ctx, args...)
	if err != nil {
		return nil, err
	}
	amount, ok := new(big.Int).SetString(strings.TrimSpace(string(payload)), 10)
	if !ok {
		return nil, swifterr.ErrConvertingAmountToBigInt(string(payload))
	}
	return amount, nil
}

// Fungible is an allowance-based token contract.
type Fungible struct {
	client
}

func NewFungible(address string) Fungible {
	return Fungible{client{address: address, channel: constants.TokenChannel}}
}

func (t Fungible) Address() string { return t.address }

func (t Fungible) BalanceOf(ctx ledger.TransactionContextInterface, account string) (*big.Int, error) {
	return t.invokeAmount(ctx, "BalanceOf", account)
}

// TransferFrom pulls tokens from the sender using the allowance the
// sender granted this contract.
func (t Fungible) TransferFrom(ctx ledger.TransactionContextInterface, sender, recipient string, amount *big.Int) error {
	return t.invokeBool(ctx, "TransferFrom", sender, recipient, amount.String())
}

// Transfer moves tokens held by this contract itself.
func (t Fungible) Transfer(ctx ledger.TransactionContextInterface, recipient string, amount *big.Int) error {
	return t.invokeBool(ctx, "Transfer", recipient, amount.String())
}

// NonFungible is a unique-token contract with per-id ownership.
type NonFungible struct {
	client
}

func NewNonFungible(address string) NonFungible {
	return NonFungible{client{address: address, channel: constants.TokenChannel}}
}

func (t NonFungible) Address() string { return t.address }

func (t NonFungible) OwnerOf(ctx ledger.TransactionContextInterface, tokenId string) (string, error) {
	payload, err := t.invoke(ctx, "OwnerOf", tokenId)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(payload)), nil
}

// SafeTransferFrom lets the receiving side reject the token.
func (t NonFungible) SafeTransferFrom(ctx ledger.TransactionContextInterface, sender, recipient, tokenId string) error {
	return t.invokeBool(ctx, "SafeTransferFrom", sender, recipient, tokenId)
}

// MultiToken is a semi-fungible contract with per-id balances.
type MultiToken struct {
	client
}

func NewMultiToken(address string) MultiToken {
	return MultiToken{client{address: address, channel: constants.TokenChannel}}
}

func (t MultiToken) Address() string { return t.address }

func (t MultiToken) BalanceOf(ctx ledger.TransactionContextInterface, account, tokenId string) (*big.Int, error) {
	return t.invokeAmount(ctx, "BalanceOf", account, tokenId)
}

func (t MultiToken) SafeTransferFrom(ctx ledger.TransactionContextInterface, sender, recipient, tokenId string, amount *big.Int) error {
	return t.invokeBool(ctx, "SafeTransferFrom", sender, recipient, tokenId, amount.String())
}
