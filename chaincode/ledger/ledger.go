// Package ledger defines the transaction-context surface the contract is
// written against. The kalpsdk transaction context satisfies it, so the
// production chaincode passes through unchanged while tests inject an
// in-memory fake.
package ledger

import (
	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
	"github.com/p2eengineering/kalp-sdk-public/response"
	"google.golang.org/protobuf/types/known/timestamppb"
)

type TransactionContextInterface interface {
	GetState(key string) ([]byte, error)
	PutStateWithoutKYC(key string, value []byte) error
	DelStateWithoutKYC(key string) error
	CreateCompositeKey(objectType string, attributes []string) (string, error)
	GetStateByPartialCompositeKey(objectType string, keys []string) (kalpsdk.StateQueryIteratorInterface, error)
	GetTxID() string
	GetTxTimestamp() (*timestamppb.Timestamp, error)
	SetEvent(name string, payload []byte) error
	GetClientIdentity() cid.ClientIdentity
	GetSignedProposal() (*peer.SignedProposal, error)
	InvokeChaincode(chaincodeName string, args [][]byte, channel string) response.Response
}
