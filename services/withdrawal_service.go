package services

import (
	"errors"
	"time"

	config "github.com/alfianmal/vidshare/configs"
	"github.com/alfianmal/vidshare/database"
	"github.com/alfianmal/vidshare/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PayoutMethods enumerates the supported withdrawal rails.
var PayoutMethods = map[string]bool{
	"usdt": true,
	"ltc":  true,
}

// RequestWithdrawal validates and creates a pending withdrawal. The debit
// happens here, not at approval: balance and withdrawn move in the same
// transaction that creates the row, so two requests cannot spend the same
// balance.
func RequestWithdrawal(userID uuid.UUID, amount float64, method string) (*models.Withdrawal, error) {
	if amount <= 0 || amount < config.MinWithdrawal() {
		return nil, ErrInvalidAmount
	}
	if !PayoutMethods[method] {
		return nil, ErrInvalidMethod
	}

	withdrawal := models.Withdrawal{
		ID:     uuid.New(),
		UserID: userID,
		Amount: amount,
		Method: method,
		Status: models.WithdrawalPending,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var earning models.Earning
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&earning).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientBalance
			}
			return err
		}
		if earning.Balance < amount {
			return ErrInsufficientBalance
		}

		earning.Balance -= amount
		earning.Withdrawn += amount
		earning.UpdatedAt = time.Now()
		if err := tx.Save(&earning).Error; err != nil {
			return err
		}

		return tx.Create(&withdrawal).Error
	})
	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}

// SetWithdrawalStatus applies an admin decision. Transitions out of
// pending are the only ones allowed; rejecting a pending request returns
// the debited amount to the account. A withdrawal already approved or
// rejected can never change again, which keeps the re-credit from being
// applied twice.
func SetWithdrawalStatus(withdrawalID uuid.UUID, status string) (*models.Withdrawal, error) {
	switch status {
	case models.WithdrawalPending, models.WithdrawalApproved, models.WithdrawalRejected:
	default:
		return nil, ErrInvalidStatus
	}

	var withdrawal models.Withdrawal
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&withdrawal, "id = ?", withdrawalID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrWithdrawalNotFound
			}
			return err
		}

		if withdrawal.Status != models.WithdrawalPending {
			return ErrInvalidTransition
		}
		if status == models.WithdrawalPending {
			return nil
		}

		withdrawal.Status = status
		if err := tx.Save(&withdrawal).Error; err != nil {
			return err
		}

		if status == models.WithdrawalRejected {
			err := tx.Model(&models.Earning{}).
				Where("user_id = ?", withdrawal.UserID).
				Updates(map[string]interface{}{
					"balance":   gorm.Expr("balance + ?", withdrawal.Amount),
					"withdrawn": gorm.Expr("withdrawn - ?", withdrawal.Amount),
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &withdrawal, nil
}
