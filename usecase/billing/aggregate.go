// Package billing implements the pure computation steps of invoice
// generation: pricing aggregation, render-context building and draft
// reconciliation. Nothing in here performs I/O.
package billing

import (
	"sort"
	"time"

	"github.com/invoiceworks/backend/domain"
	"github.com/invoiceworks/backend/pkg/money"
)

// GroupByCustomerAndDate partitions work records by customer, then groups
// each partition by calendar day. Every day collapses into one aggregated
// item carrying the summed hours and the summed price of its records,
// priced at the owning customer's hourly rate in cents.
//
// Items are emitted in ascending date order. Customers absent from rates,
// and customers without any record, do not appear in the result.
func GroupByCustomerAndDate(records []domain.WorkRecord, rates map[int64]int64) map[int64][]domain.AggregatedItem {
	type bucket struct {
		hours float64
		price int64
	}
	perCustomer := make(map[int64]map[time.Time]*bucket)

	for _, rec := range records {
		rate, ok := rates[rec.CustomerID]
		if !ok {
			continue
		}
		days := perCustomer[rec.CustomerID]
		if days == nil {
			days = make(map[time.Time]*bucket)
			perCustomer[rec.CustomerID] = days
		}
		day := rec.Day()
		b := days[day]
		if b == nil {
			b = &bucket{}
			days[day] = b
		}
		b.hours += rec.Hours
		b.price += money.MulRate(rate, rec.Hours)
	}

	result := make(map[int64][]domain.AggregatedItem, len(perCustomer))
	for customerID, days := range perCustomer {
		items := make([]domain.AggregatedItem, 0, len(days))
		for day, b := range days {
			items = append(items, domain.AggregatedItem{
				Date:  day,
				Hours: b.hours,
				Price: b.price,
			})
		}
		sort.Slice(items, func(i, j int) bool {
			return items[i].Date.Before(items[j].Date)
		})
		result[customerID] = items
	}
	return result
}

// Rates extracts the customer-ID to hourly-rate mapping the aggregation
// needs from a customer list.
func Rates(customers []domain.Customer) map[int64]int64 {
	rates := make(map[int64]int64, len(customers))
	for _, c := range customers {
		rates[c.ID] = c.Price
	}
	return rates
}
