package classifier

import (
	"strings"

	"jortiz/resumen-csv/internal/models"
)

// Built-in heuristic keyword sets. All matching is done against the
// lowercased description.

// exclusionKeywords force the excluded type: statement artifacts that are
// neither income nor expense.
var exclusionKeywords = []string{
	"saldo anterior",
	"saldo pendiente",
	"su pago en",
	"impuesto de sellos ajuste",
	"contrasiento",
}

// cardPaymentKeywords mark credit card bill payments seen from the bank
// account side.
var cardPaymentKeywords = []string{
	"pago tarjeta",
	"pago de tarjeta",
	"pago visa",
	"pago mastercard",
	"pago amex",
	"pago tarj",
}

// transferKeywords mark movements between the user's own accounts.
var transferKeywords = []string{
	"transferencia entre cuentas",
	"transf propia",
	"transferencia inmediata propia",
}

// investmentOutKeywords mark money moved into investment instruments
// (subscriptions) or back out (redemptions): internal transfers, not
// expenses.
var investmentOutKeywords = []string{
	"suscripcion fci",
	"suscripción fci",
	"suscripcion fondo",
	"rescate fci",
	"rescate fondo",
	"plazo fijo",
}

// investmentYieldKeywords mark investment earnings: real income.
var investmentYieldKeywords = []string{
	"rendimiento",
	"interes ganado",
	"interés ganado",
	"renta fci",
}

// withdrawalKeywords mark cash withdrawals.
var withdrawalKeywords = []string{
	"extraccion",
	"extracción",
	"retiro cajero",
	"extracash",
	"atm ",
}

// incomeKeywords mark salary and fee credits.
var incomeKeywords = []string{
	"sueldo",
	"haberes",
	"acreditacion de haberes",
	"honorarios",
	"salario",
	"jubilacion",
}

// categoryKeywords is the ordered fallback table: the first category whose
// keyword list matches the description wins.
var categoryKeywords = []struct {
	Category string
	Keywords []string
}{
	{models.CategorySupermarket, []string{"coto", "carrefour", "jumbo", "dia %", "supermercado", "chango mas", "vea ", "disco "}},
	{models.CategoryRestaurants, []string{"rappi", "pedidosya", "restaurante", "resto ", "cafe", "café", "mcdonald", "burger", "mostaza", "heladeria"}},
	{models.CategoryTransport, []string{"uber", "cabify", "didi", "sube", "ypf", "shell", "axion", "estacionamiento", "peaje", "taxi"}},
	{models.CategoryServices, []string{"edenor", "edesur", "metrogas", "aysa", "telecom", "personal", "movistar", "claro", "fibertel", "telecentro", "expensas"}},
	{models.CategoryHealth, []string{"farmacity", "farmacia", "osde", "swiss medical", "galeno", "medicus", "laboratorio"}},
	{models.CategoryLeisure, []string{"netflix", "spotify", "disney", "hbo", "steam", "playstation", "cine", "teatro", "youtube premium"}},
	{models.CategoryShopping, []string{"mercadolibre", "mercado libre", "tienda", "falabella", "zara", "nike", "adidas", "dafiti"}},
	{models.CategoryHome, []string{"easy ", "sodimac", "ferreteria", "muebl", "bazar"}},
	{models.CategoryEducation, []string{"universidad", "colegio", "instituto", "curso", "udemy", "coursera"}},
	{models.CategoryTravel, []string{"aerolineas", "despegar", "booking", "airbnb", "latam", "flybondi", "jetsmart"}},
}

func applyExclusions(in Input) (Result, bool) {
	desc := lowerDescription(in)
	for _, kw := range exclusionKeywords {
		if strings.Contains(desc, kw) {
			return Result{
				Type:        models.TypeExcluded,
				Category:    models.CategoryUncategorized,
				Subcategory: models.CategoryUncategorized,
			}, true
		}
	}
	return Result{}, false
}

func applyTransferHeuristics(in Input) (Result, bool) {
	desc := lowerDescription(in)

	// Investment yields are real income even though they move through the
	// same investment account as subscriptions and redemptions.
	for _, kw := range investmentYieldKeywords {
		if strings.Contains(desc, kw) {
			return Result{
				Type:        models.TypeRealIncome,
				Category:    models.CategoryInvestments,
				Subcategory: "Rendimientos",
			}, true
		}
	}

	transferSets := []struct {
		keywords    []string
		subcategory string
	}{
		{cardPaymentKeywords, models.CategoryCardPayment},
		{transferKeywords, models.CategoryTransfers},
		{investmentOutKeywords, models.CategoryInvestments},
		{withdrawalKeywords, models.CategoryWithdrawals},
	}
	for _, set := range transferSets {
		for _, kw := range set.keywords {
			if strings.Contains(desc, kw) {
				return Result{
					Type:        models.TypeInternalTransfer,
					Category:    models.CategoryTransfers,
					Subcategory: set.subcategory,
				}, true
			}
		}
	}
	return Result{}, false
}

func applyIncomeHeuristics(in Input) (Result, bool) {
	desc := lowerDescription(in)
	for _, kw := range incomeKeywords {
		if strings.Contains(desc, kw) {
			return Result{
				Type:        models.TypeRealIncome,
				Category:    models.CategorySalary,
				Subcategory: models.CategorySalary,
			}, true
		}
	}
	return Result{}, false
}

func applyKeywordTable(in Input) Result {
	desc := lowerDescription(in)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.Keywords {
			if strings.Contains(desc, kw) {
				return Result{
					Type:        typeForCategory(entry.Category, in.Amount),
					Category:    entry.Category,
					Subcategory: entry.Category,
				}
			}
		}
	}
	return Result{
		Type:        typeForCategory(models.CategoryUncategorized, in.Amount),
		Category:    models.CategoryUncategorized,
		Subcategory: models.CategoryUncategorized,
	}
}
