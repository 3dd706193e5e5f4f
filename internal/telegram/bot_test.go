package telegram

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"ovona-planner/internal/extract"
	"ovona-planner/internal/planner"
)

func TestFormatResultMarkdownParts(t *testing.T) {
	result := &planner.PlanResult{
		TargetKcal: 2000,
		Calories:   extract.Ledger{2: 1950, 1: 1800},
		ShoppingList: []string{
			"Meat:",
			"  Chicken Breast – 500g",
			"Vegetables:",
			"  Spinach – 100g",
		},
		TotalCost:   decimal.NewFromFloat(14.20),
		StaplesUsed: []string{"olive oil", "salt"},
	}

	caloriesText, shoppingText := formatResultMarkdownParts(result)

	// Days render in ascending order regardless of map iteration.
	day1 := strings.Index(caloriesText, "*Day 1*: 1800 kcal")
	day2 := strings.Index(caloriesText, "*Day 2*: 1950 kcal")
	if day1 == -1 || day2 == -1 || day1 > day2 {
		t.Errorf("Expected ordered day lines, got:\n%s", caloriesText)
	}
	if !strings.Contains(caloriesText, "Target: 2000 kcal/day") {
		t.Errorf("Expected target line, got:\n%s", caloriesText)
	}

	if !strings.Contains(shoppingText, "Chicken Breast – 500g") {
		t.Errorf("Expected shopping lines, got:\n%s", shoppingText)
	}
	if !strings.Contains(shoppingText, "Estimated Total Cost: ~£14.20") {
		t.Errorf("Expected total cost line, got:\n%s", shoppingText)
	}
	if !strings.Contains(shoppingText, "Pantry staples used:") {
		t.Errorf("Expected pantry footer, got:\n%s", shoppingText)
	}
	if !strings.Contains(shoppingText, "🫒") || !strings.Contains(shoppingText, "🧂") {
		t.Errorf("Expected staple emojis, got:\n%s", shoppingText)
	}
}

func TestFormatResultMarkdownParts_Empty(t *testing.T) {
	result := &planner.PlanResult{TotalCost: decimal.Zero}

	caloriesText, shoppingText := formatResultMarkdownParts(result)
	if !strings.Contains(caloriesText, "No calorie totals found") {
		t.Errorf("Expected empty-ledger placeholder, got:\n%s", caloriesText)
	}
	if !strings.Contains(shoppingText, "No ingredients found") {
		t.Errorf("Expected empty-list placeholder, got:\n%s", shoppingText)
	}
	if strings.Contains(shoppingText, "Pantry staples") {
		t.Errorf("Expected no pantry footer, got:\n%s", shoppingText)
	}
}

func TestFormatResultMarkdownParts_NoTargetLine(t *testing.T) {
	result := &planner.PlanResult{
		Calories:  extract.Ledger{1: 1800},
		TotalCost: decimal.Zero,
	}

	caloriesText, _ := formatResultMarkdownParts(result)
	if strings.Contains(caloriesText, "Target:") {
		t.Errorf("Expected no target line when target unset, got:\n%s", caloriesText)
	}
}
