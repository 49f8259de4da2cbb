package services

import "errors"

var (
	ErrVideoNotFound       = errors.New("video not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrInvalidAmount       = errors.New("invalid withdrawal amount")
	ErrInvalidMethod       = errors.New("invalid payout method")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidStatus       = errors.New("invalid withdrawal status")
	ErrInvalidTransition   = errors.New("invalid withdrawal status transition")
)
