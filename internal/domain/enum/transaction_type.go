package enum

// TransactionType is the direction of a ledger posting.
type TransactionType string

const (
	TransactionTypeRevenue TransactionType = "revenue"
	TransactionTypeExpense TransactionType = "expense"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeRevenue || t == TransactionTypeExpense
}

// TransactionClass is the business category of a posting.
type TransactionClass string

const (
	TransactionClassSales       TransactionClass = "sales"
	TransactionClassPurchases   TransactionClass = "purchases"
	TransactionClassDebtPayment TransactionClass = "debt_payment"
	TransactionClassExpense     TransactionClass = "expense"
	TransactionClassSalary      TransactionClass = "salary"
	TransactionClassOther       TransactionClass = "other"
)

func (c TransactionClass) Valid() bool {
	switch c {
	case TransactionClassSales, TransactionClassPurchases, TransactionClassDebtPayment,
		TransactionClassExpense, TransactionClassSalary, TransactionClassOther:
		return true
	}
	return false
}
