package acceptance_tests

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ovona-planner/internal/catalog"
	"ovona-planner/internal/database"
	"ovona-planner/internal/llm"
	"ovona-planner/internal/metrics"
	"ovona-planner/internal/planner"
	"ovona-planner/internal/pricing"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"
)

// --- Mock LLM Client ---
type mockLLMClient struct {
	generateContentCalls int
}

const generatedPlan = `# Your 3-Day Meal Plan

### 📅 **Day 1**
**Breakfast**: Overnight oats
Ingredients:
- Oats (60g)
- Banana (1 unit)
**Lunch**: Grilled chicken with rice
Ingredients:
- Chicken breast (200g)
- Brown rice (75g)
- Olive oil (10ml)
**Dinner**: Salmon and greens
Ingredients:
- Salmon (150g)
- Spinach (100g)
Total: 1800 kcal

### 📅 **Day 2**
**Breakfast**: Scrambled eggs
Ingredients:
- 2 eggs
- Olive oil (5ml)
**Lunch**: Chicken wrap
Ingredients:
- Chicken breast (150g)
- Lettuce (50g)
Total: 1750 kcal

### 📅 **Day 3**
**Breakfast**: Yogurt bowl
Ingredients:
- Greek yogurt (200g)
- Banana (1 unit)
**Dinner**: Steak and potatoes
Ingredients:
- Steak (200g)
- Potato (300g)
Total: 1900 kcal
`

func (m *mockLLMClient) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	m.generateContentCalls++
	return llm.ContentResponse{
		Content: generatedPlan,
		Usage:   llm.TokenUsage{PromptTokens: 200, CompletionTokens: 800, TotalTokens: 1000, Model: "test-model"},
	}, nil
}

func setupPipeline(t *testing.T) (*planner.Planner, *database.DB, *mockLLMClient) {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "acceptance.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cat := catalog.New(
		catalog.Entry{Key: "chicken breast", Product: "Tesco Chicken Breast Fillets", Price: 5.50, Unit: "kg", URL: "https://www.tesco.com/chicken"},
		catalog.Entry{Key: "salmon", Product: "Tesco Salmon Fillets", Price: 4.00, Unit: "240g"},
		catalog.Entry{Key: "oats", Product: "Tesco Porridge Oats", Price: 1.20, Unit: "kg"},
		catalog.Entry{Key: "banana", Product: "Tesco Bananas", Price: 0.90, Unit: "5 pack"},
	)
	mock := &mockLLMClient{}
	return planner.NewPlanner(mock, pricing.NewEngine(cat)), db, mock
}

func TestFullPipeline(t *testing.T) {
	p, db, mock := setupPipeline(t)
	ctx := context.Background()

	prof := profile.Profile{
		Name:      "Alex",
		Gender:    "Male",
		WeightKg:  70,
		Lifestyle: "Sedentary",
		Goal:      "Lose fat",
		DietType:  "Omnivore",
	}

	result, meta, err := p.GeneratePlan(ctx, prof, 3)
	if err != nil {
		t.Fatalf("GeneratePlan returned error: %v", err)
	}
	if mock.generateContentCalls != 1 {
		t.Errorf("Expected a single generation call, got %d", mock.generateContentCalls)
	}

	// Calorie ledger: one entry per day that declared a total, no gap filling.
	wantLedger := map[int]int{1: 1800, 2: 1750, 3: 1900}
	if len(result.Calories) != len(wantLedger) {
		t.Fatalf("Expected ledger with 3 days, got %v", result.Calories)
	}
	for day, kcal := range wantLedger {
		if result.Calories[day] != kcal {
			t.Errorf("Expected day %d total %d, got %d", day, kcal, result.Calories[day])
		}
	}

	// Ingredients aggregate across days: chicken 200+150, banana 1+1.
	var chickenQty, bananaQty float64
	var chickenEstimated bool
	for _, item := range result.Items {
		switch item.Name {
		case "chicken breast":
			chickenQty = item.Quantity
			chickenEstimated = item.Estimated
		case "banana":
			bananaQty = item.Quantity
		case "olive oil":
			t.Error("Expected olive oil excluded from priced items as a pantry staple")
		}
	}
	if chickenQty != 350 {
		t.Errorf("Expected chicken breast aggregated to 350g, got %f", chickenQty)
	}
	if chickenEstimated {
		t.Error("Expected chicken breast priced from the catalog, not estimated")
	}
	if bananaQty != 2 {
		t.Errorf("Expected bananas aggregated to 2, got %f", bananaQty)
	}

	// Uncatalogued ingredients still appear, marked as estimated.
	var foundEstimated bool
	for _, item := range result.Items {
		if item.Name == "steak" {
			foundEstimated = item.Estimated
		}
	}
	if !foundEstimated {
		t.Error("Expected steak present and flagged as estimated")
	}

	if result.TotalCost.IsZero() || result.TotalCost.IsNegative() {
		t.Errorf("Expected positive total cost, got %s", result.TotalCost)
	}
	if len(result.StaplesUsed) != 1 || result.StaplesUsed[0] != "olive oil" {
		t.Errorf("Expected staples [olive oil], got %v", result.StaplesUsed)
	}

	// Shopping list lines group by category headers.
	joined := strings.Join(result.ShoppingList, "\n")
	for _, want := range []string{"Meat:", "Chicken Breast – 350g", "Fruit:", "Banana – 2"} {
		if !strings.Contains(joined, want) {
			t.Errorf("Expected shopping list to contain '%s', got:\n%s", want, joined)
		}
	}

	if meta.AgentName != "Planner" || meta.Usage.TotalTokens != 1000 {
		t.Errorf("Expected call meta recorded, got %+v", meta)
	}

	// Persist the plan, shopping list and metrics the way the front-ends do.
	planRepo := planner.NewRepository(db.SQL)
	planID, err := planRepo.Save(ctx, prof.Name, result)
	if err != nil {
		t.Fatalf("Failed to save plan: %v", err)
	}

	shoppingRepo := shopping.NewRepository(db.SQL)
	if _, err := shoppingRepo.Save(ctx, &shopping.List{
		UserID:    prof.Name,
		PlanID:    planID,
		Items:     result.ShoppingList,
		TotalCost: result.TotalCost.StringFixed(2),
	}); err != nil {
		t.Fatalf("Failed to save shopping list: %v", err)
	}

	store := metrics.NewStore(db.SQL)
	if err := store.RecordMeta(meta); err != nil {
		t.Fatalf("Failed to record metrics: %v", err)
	}

	// Everything reads back.
	plans, err := planRepo.ListRecentByUserID(ctx, prof.Name, 1)
	if err != nil || len(plans) != 1 {
		t.Fatalf("Expected the stored plan back, got %d plans, err %v", len(plans), err)
	}
	if plans[0].Result.Calories[3] != 1900 {
		t.Errorf("Expected stored ledger round-tripped, got %v", plans[0].Result.Calories)
	}

	list, err := shoppingRepo.GetByPlanID(ctx, planID)
	if err != nil || list == nil {
		t.Fatalf("Expected the stored shopping list back, err %v", err)
	}
	if len(list.Items) != len(result.ShoppingList) {
		t.Errorf("Expected %d stored lines, got %d", len(result.ShoppingList), len(list.Items))
	}

	usage, err := store.GetDailyUsage(1)
	if err != nil || len(usage) != 1 {
		t.Fatalf("Expected recorded usage back, got %v, err %v", usage, err)
	}
	if usage[0].TotalPrompt != 200 || usage[0].TotalCompletion != 800 {
		t.Errorf("Expected 200/800 tokens recorded, got %+v", usage[0])
	}
}

func TestPipelineDeterminism(t *testing.T) {
	p, _, _ := setupPipeline(t)

	first := p.Analyze(generatedPlan)
	for i := 0; i < 5; i++ {
		result := p.Analyze(generatedPlan)
		if !result.TotalCost.Equal(first.TotalCost) {
			t.Fatalf("Expected stable total cost, got %s then %s", first.TotalCost, result.TotalCost)
		}
		if strings.Join(result.ShoppingList, "\n") != strings.Join(first.ShoppingList, "\n") {
			t.Fatal("Expected identical shopping list across runs")
		}
	}
}
