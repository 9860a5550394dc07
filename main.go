/*
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"log"

	"swift-contract/chaincode"

	"github.com/p2eengineering/kalp-sdk-public/kalpsdk"
)

func main() {
	contract := kalpsdk.Contract{IsPayableContract: true}
	contract.Contract.Name = "klp-7377696674-cc"
	contract.Logger = kalpsdk.NewLogger()
	swiftChaincode, err := kalpsdk.NewChaincode(&chaincode.SmartContract{Contract: contract})
	if err != nil {
		log.Panicf("Error creating swift chaincode: %v", err)
	}

	if err := swiftChaincode.Start(); err != nil {
		log.Panicf("Error starting swift chaincode: %v", err)
	}
}
