package chaincode_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"swift-contract/chaincode"
	"swift-contract/chaincode/mocks"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-protos-go/common"
	"github.com/hyperledger/fabric-protos-go/ledger/queryresult"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	deployer        = "0b87970433b22494faff1cc7a819e71bddc7880c"
	admin2          = "16f8ff33ef05bb24fb9a30fa79e700f57a496184"
	moderator1      = "35959595d5c7b8f15e877c03932e82e81a69b191"
	user1           = "2da4c4908a393a387b728206b18388bc529fa8d7"
	user2           = "0603d83b6f15804b7a0519eee379cca3c9b6e99b"
	user3           = "9c95d0098cf9e07df131fc42d9808e0039953b7e"
	selfAddress     = "klp-7377696674-cc"
	fungibleToken   = "klp-aabbcc0011-cc"
	nftToken        = "klp-ddeeff2233-cc"
	multiToken      = "klp-4455667788-cc"
	startTime int64 = 1700000000
)

type emittedEvent struct {
	name    string
	payload []byte
}

type harness struct {
	ctx      *mocks.TransactionContext
	contract *chaincode.SmartContract
	world    map[string][]byte
	events   []emittedEvent
	now      int64
	txSeq    int
}

func newHarness() *harness {
	h := &harness{
		ctx:   &mocks.TransactionContext{},
		world: map[string][]byte{},
		now:   startTime,
	}
	h.contract = &chaincode.SmartContract{}

	h.ctx.GetStateStub = func(key string) ([]byte, error) {
		if data, found := h.world[key]; found {
			return data, nil
		}
		return nil, nil
	}
	h.ctx.PutStateWithoutKYCStub = func(key string, value []byte) error {
		h.world[key] = value
		return nil
	}
	h.ctx.DelStateWithoutKYCStub = func(key string) error {
		delete(h.world, key)
		return nil
	}
	h.ctx.CreateCompositeKeyStub = func(objectType string, attributes []string) (string, error) {
		key := "_" + objectType + "_"
		for _, a := range attributes {
			key += a + "_"
		}
		return key, nil
	}
	h.ctx.GetStateByPartialCompositeKeyStub = func(objectType string, keys []string) (kalpsdk.StateQueryIteratorInterface, error) {
		prefix := "_" + objectType + "_"
		for _, k := range keys {
			prefix += k + "_"
		}
		var matches []queryresult.KV
		for key, value := range h.world {
			if strings.HasPrefix(key, prefix) {
				matches = append(matches, queryresult.KV{Key: key, Value: value})
			}
		}
		index := 0
		return &mocks.StateQueryIterator{
			HasNextStub: func() bool { return index < len(matches) },
			NextStub: func() (*queryresult.KV, error) {
				if index >= len(matches) {
					return nil, fmt.Errorf("iterator out of bounds")
				}
				index++
				return &matches[index-1], nil
			},
		}, nil
	}
	h.ctx.GetTxIDStub = func() string {
		h.txSeq++
		return fmt.Sprintf("txid-%d", h.txSeq)
	}
	h.ctx.GetTxTimestampStub = func() (*timestamppb.Timestamp, error) {
		return &timestamppb.Timestamp{Seconds: h.now}, nil
	}
	h.ctx.SetEventStub = func(name string, payload []byte) error {
		h.events = append(h.events, emittedEvent{name: name, payload: payload})
		return nil
	}

	// A direct call: the proposal's channel header carries this contract's
	// own address.
	payloadBytes, _ := proto.Marshal(&common.Payload{
		Header: &common.Header{ChannelHeader: []byte("header " + selfAddress + " trailer")},
	})
	proposalBytes, _ := proto.Marshal(&peer.Proposal{Payload: payloadBytes})
	h.ctx.GetSignedProposalReturns(&peer.SignedProposal{ProposalBytes: proposalBytes}, nil)

	return h
}

func (h *harness) setUser(address string) {
	completeId := fmt.Sprintf("x509::CN=%s,O=Organization,L=City,ST=State,C=Country", address)
	b64ID := base64.StdEncoding.EncodeToString([]byte(completeId))
	identity := &mocks.ClientIdentity{}
	identity.GetIDReturns(b64ID, nil)
	h.ctx.GetClientIdentityReturns(identity)
}

func (h *harness) advance(seconds int64) {
	h.now += seconds
}

// routedThrough rewires the signed proposal so the call appears to arrive
// via another contract.
func (h *harness) routedThrough(contractAddress string) {
	payloadBytes, _ := proto.Marshal(&common.Payload{
		Header: &common.Header{ChannelHeader: []byte("header " + contractAddress + " trailer")},
	})
	proposalBytes, _ := proto.Marshal(&peer.Proposal{Payload: payloadBytes})
	h.ctx.GetSignedProposalReturns(&peer.SignedProposal{ProposalBytes: proposalBytes}, nil)
}

func (h *harness) eventCount(name string) int {
	count := 0
	for _, e := range h.events {
		if e.name == name {
			count++
		}
	}
	return count
}

func (h *harness) lastEvent(name string) []byte {
	for i := len(h.events) - 1; i >= 0; i-- {
		if h.events[i].name == name {
			return h.events[i].payload
		}
	}
	return nil
}

func initialized(t *testing.T) *harness {
	t.Helper()
	h := newHarness()
	h.setUser(deployer)
	ok, err := h.contract.Initialize(h.ctx, "TransferSWIFT")
	require.NoError(t, err)
	require.True(t, ok)
	return h
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}
