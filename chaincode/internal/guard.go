package internal

import (
	"net/http"
	"sync"

	"swift-contract/chaincode/swifterr"
)

var (
	guardMu  sync.Mutex
	inFlight = map[string]struct{}{}
)

// EnterNonReentrant marks the transaction as executing a value-moving
// entry point. A nested cross-contract call that loops back into this
// contract shares the transaction ID and is rejected. Ledger state cannot
// serve as the guard because writes are invisible inside an in-flight
// transaction.
func EnterNonReentrant(txID string) error {
	guardMu.Lock()
	defer guardMu.Unlock()
	if _, ok := inFlight[txID]; ok {
		return swifterr.New("reentrant call rejected", http.StatusConflict)
	}
	inFlight[txID] = struct{}{}
	return nil
}

func ExitNonReentrant(txID string) {
	guardMu.Lock()
	defer guardMu.Unlock()
	delete(inFlight, txID)
}
