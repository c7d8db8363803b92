// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/home-cost-calculator/internal/calculator"
)

// FindResult finds a scenario result by name in the results slice.
// Returns a pointer to the result if found, nil otherwise.
func FindResult(results []calculator.Result, name string) *calculator.Result {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}
