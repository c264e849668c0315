package advisor

import (
	"encoding/json"
	"strings"
	"testing"

	"fintrack/internal/model"
	"fintrack/pkg/market"
	"fintrack/pkg/news"

	"github.com/go-playground/assert/v2"
	"github.com/shopspring/decimal"
)

func quote(symbol, date, closePrice string) market.Quote {
	data := `{"Meta Data":{},"Time Series (Daily)":{"` + date + `":{"1. open":"1","4. close":"` + closePrice + `"},"2020-01-01":{"4. close":"1"}}}`
	return market.Quote{Symbol: symbol, Data: json.RawMessage(data)}
}

func TestBuildPromptProfileBlock(t *testing.T) {
	user := model.UserProfile{
		ID:            42,
		MonthlyIncome: decimal.NewNullDecimal(decimal.RequireFromString("85000.50")),
		TotalExpenses: decimal.NewNullDecimal(decimal.RequireFromString("12000")),
	}

	got := BuildPrompt(user, market.Snapshot{}, nil)

	want := "User profile:\n" +
		"- id: 42\n" +
		"- income: 85000.50\n" +
		"- monthly_budget: unknown\n" +
		"- total_expenses: 12000\n" +
		"- risk_profile: moderate\n" +
		"- investable_cash: unknown\n\n" +
		"Market snapshot:\n\n\n" +
		"Recent business news:\n\n\n"

	assert.Equal(t, true, strings.HasPrefix(got, want))
	assert.Equal(t, true, strings.HasSuffix(got, "  \"notes\": \"...\"\n}"))
}

func TestBuildPromptRiskProfile(t *testing.T) {
	got := BuildPrompt(model.UserProfile{ID: 1, RiskProfile: "aggressive"}, nil, nil)

	assert.Equal(t, true, strings.Contains(got, "- risk_profile: aggressive\n"))
}

func TestBuildPromptMarketBlock(t *testing.T) {
	snapshot := market.Snapshot{
		quote("S1", "2024-05-02", "10.00"),
		{Symbol: "S2", Err: "timeout"},
		quote("S3", "2024-05-01", "30.00"),
		{Symbol: "S4", Data: json.RawMessage(`{"Note":"rate limited"}`)},
		quote("S5", "2024-05-02", "50.00"),
		quote("S6", "2024-05-02", "60.00"),
	}

	got := BuildPrompt(model.UserProfile{ID: 1}, snapshot, nil)

	want := "Market snapshot:\n" +
		"- S1: 10.00 on 2024-05-02\n" +
		"- S2: unavailable\n" +
		"- S3: 30.00 on 2024-05-01\n" +
		"- S4: unavailable\n" +
		"- S5: 50.00 on 2024-05-02\n\n"

	assert.Equal(t, true, strings.Contains(got, want))
	assert.Equal(t, false, strings.Contains(got, "S6"))
}

func TestBuildPromptNewsBlock(t *testing.T) {
	articles := []news.Article{{Title: "RBI holds rates"}, {Title: "Sensex closes higher"}}

	got := BuildPrompt(model.UserProfile{ID: 1}, nil, articles)

	assert.Equal(t, true, strings.Contains(got, "Recent business news:\n- RBI holds rates\n- Sensex closes higher\n\n"))
}

func TestBuildPromptInstructions(t *testing.T) {
	got := BuildPrompt(model.UserProfile{ID: 1}, nil, nil)

	assert.Equal(t, true, strings.Contains(got, `"AI-generated suggestions, not financial advice."`))
	assert.Equal(t, true, strings.Contains(got, `{"action": "invest"|"reduce", "target": "...", "amount_pct": ..., "rationale": "..."}`))
	assert.Equal(t, true, strings.Contains(got, "confidence score (0–100)"))
}

func TestBuildPromptDeterministic(t *testing.T) {
	user := model.UserProfile{
		ID:             9,
		MonthlyBudget:  decimal.NewNullDecimal(decimal.NewFromInt(30000)),
		InvestableCash: decimal.NewNullDecimal(decimal.NewFromInt(5000)),
		RiskProfile:    "conservative",
	}
	snapshot := market.Snapshot{quote("TCS.NS", "2024-05-02", "3850.10"), {Symbol: "INFY.NS", Err: "boom"}}
	articles := []news.Article{{Title: "A"}, {Title: "B"}}

	first := BuildPrompt(user, snapshot, articles)
	second := BuildPrompt(user, snapshot, articles)

	assert.Equal(t, first, second)
}

func TestMoneyKeepsStoredScale(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"85000.50", "85000.50"},
		{"12000.00", "12000.00"},
		{"12000", "12000"},
		{"0.10", "0.10"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, money(decimal.NewNullDecimal(decimal.RequireFromString(tt.in))))
		})
	}

	assert.Equal(t, "unknown", money(decimal.NullDecimal{}))
}
