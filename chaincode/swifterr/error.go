package swifterr

import (
	"fmt"
	"net/http"
)

// SwiftError carries an HTTP-style status code so callers and off-chain
// consumers can classify failures without parsing message text.
type SwiftError struct {
	StatusCode  int
	Message     string
	internalErr error
}

func (e *SwiftError) Error() string {
	return fmt.Sprintf("%s, status code:%d", e.Message, e.StatusCode)
}

func (e *SwiftError) FullError() string {
	return fmt.Sprintf("%s, status code:%d, internal err: %v", e.Message, e.StatusCode, e.internalErr)
}

func New(message string, statusCode int) *SwiftError {
	return &SwiftError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewInternalError(err error, message string, statusCode int) *SwiftError {
	return &SwiftError{
		StatusCode:  statusCode,
		Message:     message,
		internalErr: err,
	}
}

func ErrUnauthorized(role string) *SwiftError {
	return New(fmt.Sprintf("only %s can perform this action", role), http.StatusUnauthorized)
}

func ErrInvalidAddress(address string) *SwiftError {
	return New(fmt.Sprintf("invalid address: %s", address), http.StatusBadRequest)
}

func ErrInvalidUserAddress(address string) *SwiftError {
	return New(fmt.Sprintf("invalid user address: %s", address), http.StatusBadRequest)
}

func ErrInvalidContractAddress(address string) *SwiftError {
	return New(fmt.Sprintf("invalid contract address: %s", address), http.StatusBadRequest)
}

func ErrInvalidAmount(amount string) *SwiftError {
	return New(fmt.Sprintf("invalid amount passed: %s", amount), http.StatusBadRequest)
}

func ErrConvertingAmountToBigInt(amount string) *SwiftError {
	return New(fmt.Sprintf("error converting amount to big int: %s", amount), http.StatusInternalServerError)
}

func ErrBlacklistedAddress(address string) *SwiftError {
	return New(fmt.Sprintf("address is blacklisted: %s", address), http.StatusForbidden)
}

func ErrNotBlacklisted(address string) *SwiftError {
	return New(fmt.Sprintf("address is not blacklisted: %s", address), http.StatusBadRequest)
}

func ErrAlreadyBlacklisted(address string) *SwiftError {
	return New(fmt.Sprintf("address is already blacklisted: %s", address), http.StatusBadRequest)
}

func ErrNotWhitelisted(class string, asset string) *SwiftError {
	return New(fmt.Sprintf("%s asset is not whitelisted: %s", class, asset), http.StatusBadRequest)
}

func ErrFailedToGetKey(key string) *SwiftError {
	return New(fmt.Sprintf("failed to get state for key: %s", key), http.StatusInternalServerError)
}

func ErrFailedToPutState(err error) *SwiftError {
	return NewInternalError(err, "failed to put state", http.StatusInternalServerError)
}

func ErrFailedToDeleteState(err error) *SwiftError {
	return NewInternalError(err, "failed to delete state", http.StatusInternalServerError)
}

func ErrInsufficientBalance(account string) *SwiftError {
	return New(fmt.Sprintf("insufficient balance in account: %s", account), http.StatusBadRequest)
}
