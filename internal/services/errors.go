package services

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidState           = errors.New("invalid state for operation")
	ErrAlreadyProcessed       = errors.New("approval already processed")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidDecision        = errors.New("invalid decision")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrDuplicateCheckIn       = errors.New("check-in already exists for this date")
)
