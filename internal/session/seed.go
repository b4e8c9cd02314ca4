package session

import (
	"time"

	"monedero/internal/core"
)

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

// seedTransactions is the sample ledger a brand-new user starts with.
func seedTransactions() []core.Transaction {
	return []core.Transaction{
		{ID: "1", Description: "Café de la mañana", Amount: core.Money{Cents: 350}, Date: day(2024, 7, 20), Type: core.TypeExpense, Category: "Comida", PaymentMethod: core.MethodCash},
		{ID: "2", Description: "Salario mensual", Amount: core.Money{Cents: 250000}, Date: day(2024, 7, 15), Type: core.TypeIncome, Category: "Salario", PaymentMethod: core.MethodTransfer},
		{ID: "3", Description: "Almuerzo con amigos", Amount: core.Money{Cents: 1575}, Date: day(2024, 7, 19), Type: core.TypeExpense, Category: "Comida", PaymentMethod: "Interbank"},
		{ID: "4", Description: "Venta de artículo usado", Amount: core.Money{Cents: 5000}, Date: day(2024, 7, 18), Type: core.TypeIncome, Category: "Ventas", PaymentMethod: core.MethodCash},
		{ID: "5", Description: "Factura de internet", Amount: core.Money{Cents: 4500}, Date: day(2024, 7, 10), Type: core.TypeExpense, Category: "Servicios", PaymentMethod: "BBVA"},
		{ID: "6", Description: "Transporte público", Amount: core.Money{Cents: 250}, Date: day(2024, 7, 20), Type: core.TypeExpense, Category: "Transporte", PaymentMethod: core.MethodCash},
		{ID: "7", Description: "Cena en restaurante", Amount: core.Money{Cents: 3000}, Date: day(2024, 7, 19), Type: core.TypeExpense, Category: "Comida", PaymentMethod: "Saga Falabella"},
		{ID: "8", Description: "Regalo de cumpleaños", Amount: core.Money{Cents: 2500}, Date: day(2024, 7, 17), Type: core.TypeExpense, Category: "Entretenimiento", PaymentMethod: "Interbank"},
	}
}

// seedLoans is the sample loan book a brand-new user starts with.
func seedLoans() []core.Loan {
	return []core.Loan{
		{
			ID:              "loan-1",
			Bank:            "Interbank",
			Amount:          core.Money{Cents: 500000},
			InterestRate:    0.05,
			StartDate:       day(2024, 6, 1),
			DueDate:         day(2025, 6, 1),
			MonthlyPayment:  core.Money{Cents: 43873},
			RemainingAmount: core.Money{Cents: 500000},
			PaymentsMade: []core.Payment{
				{Date: day(2024, 6, 1), Amount: core.Money{Cents: 43873}},
				{Date: day(2024, 7, 1), Amount: core.Money{Cents: 43873}},
			},
			Currency: "PEN",
		},
		{
			ID:              "loan-2",
			Bank:            "BBVA",
			Amount:          core.Money{Cents: 1000000},
			InterestRate:    0.04,
			StartDate:       day(2024, 5, 15),
			DueDate:         day(2026, 5, 15),
			MonthlyPayment:  core.Money{Cents: 45227},
			RemainingAmount: core.Money{Cents: 1000000},
			PaymentsMade: []core.Payment{
				{Date: day(2024, 5, 15), Amount: core.Money{Cents: 45227}},
				{Date: day(2024, 6, 15), Amount: core.Money{Cents: 45227}},
				{Date: day(2024, 7, 15), Amount: core.Money{Cents: 45227}},
			},
			Currency: "USD",
		},
		{
			ID:              "loan-3",
			Bank:            "Saga Falabella",
			Amount:          core.Money{Cents: 200000},
			InterestRate:    0.06,
			StartDate:       day(2024, 7, 1),
			DueDate:         day(2025, 7, 1),
			MonthlyPayment:  core.Money{Cents: 17250},
			RemainingAmount: core.Money{Cents: 200000},
			PaymentsMade:    []core.Payment{},
			Currency:        "EUR",
		},
	}
}
