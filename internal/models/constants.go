package models

// Transaction types. A transaction carries exactly one of these tags.
const (
	TypeRealIncome       = "real_income"
	TypeRealExpense      = "real_expense"
	TypeInternalTransfer = "internal_transfer"
	TypeExcluded         = "excluded"
	TypePayment          = "payment"
)

// Supported currencies. ARS is the default for statements without an
// explicit currency marker.
const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
)

// Well-known category names used by the heuristic classifier.
const (
	CategoryUncategorized = "Varios"
	CategorySupermarket   = "Supermercado"
	CategoryRestaurants   = "Restaurantes"
	CategoryTransport     = "Transporte"
	CategoryServices      = "Servicios"
	CategoryHealth        = "Salud"
	CategoryLeisure       = "Entretenimiento"
	CategoryHome          = "Hogar"
	CategoryShopping      = "Compras"
	CategoryEducation     = "Educación"
	CategorySalary        = "Sueldo"
	CategoryInvestments   = "Inversiones"
	CategoryWithdrawals   = "Extracciones"
	CategoryTransfers     = "Transferencias"
	CategoryCardPayment   = "Pago de Tarjeta"
	CategoryTravel        = "Viajes"
)

// Recurrence frequencies for recurring expense candidates.
const (
	FrequencyWeekly    = "weekly"
	FrequencyBiweekly  = "biweekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
)
