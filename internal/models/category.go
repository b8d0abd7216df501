package models

// BudgetCategory is the spending bucket a budget covers.
type BudgetCategory string

const (
	BudgetCategoryRent    BudgetCategory = "Rent"
	BudgetCategoryBills   BudgetCategory = "Bills"
	BudgetCategoryGrocery BudgetCategory = "Grocery"
	BudgetCategoryOther   BudgetCategory = "Other"
)

// ExpenseCategory classifies an expense.
type ExpenseCategory string

const (
	ExpenseCategorySalary  ExpenseCategory = "Salary"
	ExpenseCategoryRent    ExpenseCategory = "Rent"
	ExpenseCategoryBills   ExpenseCategory = "Bills"
	ExpenseCategoryGrocery ExpenseCategory = "Grocery"
	ExpenseCategoryOther   ExpenseCategory = "Other"
)

// IncomeCategory classifies an income.
type IncomeCategory string

const (
	IncomeCategorySalary    IncomeCategory = "Salary"
	IncomeCategoryBusiness  IncomeCategory = "Business"
	IncomeCategoryFreelance IncomeCategory = "Freelance"
	IncomeCategoryOther     IncomeCategory = "Other"
)

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "Cash"
	PaymentMethodCreditCard   PaymentMethod = "Credit Card"
	PaymentMethodDebitCard    PaymentMethod = "Debit Card"
	PaymentMethodBankTransfer PaymentMethod = "Bank Transfer"
)

// Allowed values, in the order the forms list them.
var (
	BudgetCategories  = []string{"Rent", "Bills", "Grocery", "Other"}
	ExpenseCategories = []string{"Salary", "Rent", "Bills", "Grocery", "Other"}
	IncomeCategories  = []string{"Salary", "Business", "Freelance", "Other"}
	PaymentMethods    = []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer"}
)
