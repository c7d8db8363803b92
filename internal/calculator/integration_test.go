package calculator_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/home-cost-calculator/internal/calculator"
	"github.com/iwvelando/home-cost-calculator/internal/config"
	"github.com/iwvelando/home-cost-calculator/pkg/constants"
	"github.com/iwvelando/home-cost-calculator/pkg/output"
	"github.com/iwvelando/home-cost-calculator/pkg/testutil"
	"go.uber.org/zap"
)

func TestExampleConfiguration(t *testing.T) {
	logger := zap.NewNop()

	conf, err := config.LoadConfiguration("../../" + constants.ExampleConfigFile)
	if err != nil {
		t.Fatalf("LoadConfiguration failed: %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected example configuration to validate cleanly, got %v", warnings)
	}

	results, err := calculator.Run(logger, *conf)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 active scenarios, got %d", len(results))
	}

	expectedTotals := map[string]float64{
		"starter home":            1677.71,
		"starter home yearly":     20132.52,
		"fifteen year with edits": 3705.47,
	}
	for name, total := range expectedTotals {
		result := testutil.FindResult(results, name)
		if result == nil {
			t.Errorf("missing scenario %s", name)
			continue
		}
		if result.Breakdown.TotalPayment != total {
			t.Errorf("%s: total %v, expected %v", name, result.Breakdown.TotalPayment, total)
		}
	}

	edited := testutil.FindResult(results, "fifteen year with edits")
	if edited != nil {
		if edited.Fields[config.FieldTaxRate].DisplayValue != "1.25" {
			t.Errorf("expected rejected tax edit to keep 1.25, got %q", edited.Fields[config.FieldTaxRate].DisplayValue)
		}
		if len(edited.Notes) != 1 {
			t.Errorf("expected one rejected edit note, got %v", edited.Notes)
		}
	}

	if testutil.FindResult(results, "inactive example") != nil {
		t.Error("inactive scenario should be skipped")
	}

	var buf bytes.Buffer
	output.PrettyFormat(&buf, results)
	if !strings.Contains(buf.String(), "Total Payment:           $1,677.71") {
		t.Errorf("pretty output missing monthly total:\n%s", buf.String())
	}
	if !strings.Contains(output.CsvString(results), "starter home yearly,yearly,30,") {
		t.Error("CSV output missing yearly scenario row")
	}
}
