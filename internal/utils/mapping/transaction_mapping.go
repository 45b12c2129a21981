package mapping

import (
	"github.com/SscSPs/membership_ledger/internal/core/domain"
	"github.com/SscSPs/membership_ledger/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		WalletID:        d.WalletID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		Category:        d.Category,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		CreatedAt:       d.CreatedAt,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		WalletID:        m.WalletID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		Category:        m.Category,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
