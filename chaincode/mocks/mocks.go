// Package mocks holds hand-written fakes for the transaction-context
// surface the contract consumes. Tests assign the Stub fields they care
// about; unset stubs fall back to inert defaults.
package mocks

import (
	"crypto/x509"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
	"github.com/p2eengineering/kalp-sdk-public/response"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type TransactionContext struct {
	GetStateStub                      func(string) ([]byte, error)
	PutStateWithoutKYCStub            func(string, []byte) error
	DelStateWithoutKYCStub            func(string) error
	CreateCompositeKeyStub            func(string, []string) (string, error)
	GetStateByPartialCompositeKeyStub func(string, []string) (kalpsdk.StateQueryIteratorInterface, error)
	GetTxIDStub                       func() string
	GetTxTimestampStub                func() (*timestamppb.Timestamp, error)
	SetEventStub                      func(string, []byte) error
	GetClientIdentityStub             func() cid.ClientIdentity
	GetSignedProposalStub             func() (*peer.SignedProposal, error)
	InvokeChaincodeStub               func(string, [][]byte, string) response.Response
}

func (c *TransactionContext) GetState(key string) ([]byte, error) {
	if c.GetStateStub != nil {
		return c.GetStateStub(key)
	}
	return nil, nil
}

func (c *TransactionContext) PutStateWithoutKYC(key string, value []byte) error {
	if c.PutStateWithoutKYCStub != nil {
		return c.PutStateWithoutKYCStub(key, value)
	}
	return nil
}

func (c *TransactionContext) DelStateWithoutKYC(key string) error {
	if c.DelStateWithoutKYCStub != nil {
		return c.DelStateWithoutKYCStub(key)
	}
	return nil
}

func (c *TransactionContext) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	if c.CreateCompositeKeyStub != nil {
		return c.CreateCompositeKeyStub(objectType, attributes)
	}
	key := "_" + objectType + "_"
	for _, a := range attributes {
		key += a + "_"
	}
	return key, nil
}

func (c *TransactionContext) GetStateByPartialCompositeKey(objectType string, keys []string) (kalpsdk.StateQueryIteratorInterface, error) {
	if c.GetStateByPartialCompositeKeyStub != nil {
		return c.GetStateByPartialCompositeKeyStub(objectType, keys)
	}
	return &StateQueryIterator{}, nil
}

func (c *TransactionContext) GetTxID() string {
	if c.GetTxIDStub != nil {
		return c.GetTxIDStub()
	}
	return "mock-tx-id"
}

func (c *TransactionContext) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	if c.GetTxTimestampStub != nil {
		return c.GetTxTimestampStub()
	}
	return &timestamppb.Timestamp{}, nil
}

func (c *TransactionContext) SetEvent(name string, payload []byte) error {
	if c.SetEventStub != nil {
		return c.SetEventStub(name, payload)
	}
	return nil
}

func (c *TransactionContext) GetClientIdentity() cid.ClientIdentity {
	if c.GetClientIdentityStub != nil {
		return c.GetClientIdentityStub()
	}
	return &ClientIdentity{}
}

func (c *TransactionContext) GetClientIdentityReturns(identity cid.ClientIdentity) {
	c.GetClientIdentityStub = func() cid.ClientIdentity { return identity }
}

func (c *TransactionContext) GetSignedProposal() (*peer.SignedProposal, error) {
	if c.GetSignedProposalStub != nil {
		return c.GetSignedProposalStub()
	}
	return &peer.SignedProposal{}, nil
}

func (c *TransactionContext) GetSignedProposalReturns(proposal *peer.SignedProposal, err error) {
	c.GetSignedProposalStub = func() (*peer.SignedProposal, error) { return proposal, err }
}

func (c *TransactionContext) InvokeChaincode(chaincodeName string, args [][]byte, channel string) response.Response {
	if c.InvokeChaincodeStub != nil {
		return c.InvokeChaincodeStub(chaincodeName, args, channel)
	}
	return response.Response{Response: peer.Response{Status: 200}}
}

type ClientIdentity struct {
	GetIDStub func() (string, error)
}

func (c *ClientIdentity) GetIDReturns(id string, err error) {
	c.GetIDStub = func() (string, error) { return id, err }
}

func (c *ClientIdentity) GetID() (string, error) {
	if c.GetIDStub != nil {
		return c.GetIDStub()
	}
	return "", nil
}

func (c *ClientIdentity) GetMSPID() (string, error) { return "", nil }

func (c *ClientIdentity) GetAttributeValue(string) (string, bool, error) { return "", false, nil }

func (c *ClientIdentity) AssertAttributeValue(string, string) error { return nil }

func (c *ClientIdentity) GetX509Certificate() (*x509.Certificate, error) { return nil, nil }

type StateQueryIterator struct {
	HasNextStub func() bool
	NextStub    func() (*queryresult.KV, error)
	CloseStub   func() error
}

func (it *StateQueryIterator) HasNext() bool {
	if it.HasNextStub != nil {
		return it.HasNextStub()
	}
	return false
}

func (it *StateQueryIterator) Next() (*queryresult.KV, error) {
	if it.NextStub != nil {
		return it.NextStub()
	}
	return nil, nil
}

func (it *StateQueryIterator) Close() error {
	if it.CloseStub != nil {
		return it.CloseStub()
	}
	return nil
}
