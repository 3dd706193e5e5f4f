// Package planner generates a meal plan via an LLM and derives structured
// artifacts from the raw text: the per-day calorie ledger and the priced,
// categorized shopping list.
package planner

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"text/template"
	"time"

	"github.com/shopspring/decimal"

	"ovona-planner/internal/extract"
	"ovona-planner/internal/llm"
	"ovona-planner/internal/pricing"
	"ovona-planner/internal/profile"
	"ovona-planner/internal/shopping"
)

//go:embed plan_prompt.md
var planPrompt string

// PlanResult carries everything derived from one generated plan.
type PlanResult struct {
	PlanText     string          `json:"plan_text"`
	Days         int             `json:"days"`
	TargetKcal   int             `json:"target_kcal"`
	Calories     extract.Ledger  `json:"calories"`
	ShoppingList []string        `json:"shopping_list"`
	Items        []pricing.Item  `json:"items"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	StaplesUsed  []string        `json:"staples_used,omitempty"`
}

// Planner generates plan text and runs the extraction/costing pipeline.
type Planner struct {
	textGen llm.TextGenerator
	engine  *pricing.Engine
}

// NewPlanner creates a new Planner instance.
func NewPlanner(textGen llm.TextGenerator, engine *pricing.Engine) *Planner {
	return &Planner{
		textGen: textGen,
		engine:  engine,
	}
}

// GeneratePlan builds the prompt from the profile, obtains plan text from the
// LLM and analyzes it. The returned meta records the single generation call.
func (p *Planner) GeneratePlan(ctx context.Context, prof profile.Profile, days int) (*PlanResult, llm.CallMeta, error) {
	start := time.Now()

	prompt, err := buildPlanPrompt(prof, days)
	if err != nil {
		return nil, llm.CallMeta{}, err
	}

	resp, err := p.textGen.GenerateContent(ctx, prompt)
	meta := llm.CallMeta{
		AgentName: "Planner",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return nil, meta, fmt.Errorf("failed to generate meal plan: %w", err)
	}

	result := p.Analyze(resp.Content)
	result.Days = days
	result.TargetKcal = prof.TargetCalories()
	return result, meta, nil
}

// Analyze runs the deterministic extraction and costing pipeline over raw
// plan text. It never fails: malformed input yields empty containers.
func (p *Planner) Analyze(planText string) *PlanResult {
	extracted := extract.Extract(planText)
	items, total := p.engine.Price(extracted.Ingredients)

	return &PlanResult{
		PlanText:     planText,
		Calories:     extracted.Calories,
		ShoppingList: shopping.Format(items),
		Items:        items,
		TotalCost:    total,
		StaplesUsed:  pricing.StaplesIn(extracted.Ingredients.Names()),
	}
}

type promptData struct {
	profile.Profile
	Days       int
	TargetKcal int
}

func buildPlanPrompt(prof profile.Profile, days int) (string, error) {
	tmpl, err := template.New("plan").Parse(planPrompt)
	if err != nil {
		return "", fmt.Errorf("failed to parse plan prompt template: %w", err)
	}

	var buf bytes.Buffer
	data := promptData{
		Profile:    prof,
		Days:       days,
		TargetKcal: prof.TargetCalories(),
	}
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render plan prompt: %w", err)
	}
	return buf.String(), nil
}
