package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Amount is a decimal column. SQLite stores it as TEXT because its NUMERIC
// affinity converts values to REAL and drops digits past float64 precision.
type Amount struct {
	decimal.Decimal
}

// GormDBDataType picks the column type per dialect.
func (Amount) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "decimal(20,4)"
}

// Customer represents a customer record in the database.
type Customer struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"size:100;not null"`
	LastName  string `gorm:"size:100;not null"`
	CreatedAt time.Time
}

// Account represents an account record in the database.
type Account struct {
	Number     int64  `gorm:"primaryKey;autoIncrement"`
	CustomerID int64  `gorm:"index;not null"`
	Balance    Amount `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Transaction represents a persisted ledger entry. OriginAccount is NULL for
// deposits and withdrawals.
type Transaction struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement"`
	Reference          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Type               string    `gorm:"type:varchar(16);not null"`
	OriginAccount      *int64    `gorm:"index"`
	DestinationAccount int64     `gorm:"index;not null"`
	Value              Amount    `gorm:"not null"`
	OccurredAt         time.Time `gorm:"not null"`
}

// TableName specifies the table name for the Customer model.
func (Customer) TableName() string { return "customers" }

// TableName specifies the table name for the Account model.
func (Account) TableName() string { return "accounts" }

// TableName specifies the table name for the Transaction model.
func (Transaction) TableName() string { return "transactions" }

// Migrate creates or updates the ledger schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Customer{}, &Account{}, &Transaction{})
}
