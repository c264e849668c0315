package advisor

import (
	"fmt"
	"strings"

	"fintrack/internal/model"
	"fintrack/pkg/market"
	"fintrack/pkg/news"

	"github.com/shopspring/decimal"
)

const (
	promptMarketEntries = 5
	unknownValue        = "unknown"
)

const instructions = `
You are an AI financial advisor. Based on this user's profile, market data, and news:
1. Suggest up to 3 recommendations:
   - where to INVEST (sector/ticker/ETF)
   - where to REDUCE spending
2. Provide rationale and confidence score (0–100)
3. Add disclaimer: "AI-generated suggestions, not financial advice."

Return strictly in JSON:
{
  "date": "...",
  "recommendations": [
    {"action": "invest"|"reduce", "target": "...", "amount_pct": ..., "rationale": "..."}
  ],
  "confidence": number,
  "notes": "..."
}`

// BuildPrompt renders the user profile, the first market entries and the
// headlines into the model prompt. Same inputs, same bytes.
func BuildPrompt(user model.UserProfile, snapshot market.Snapshot, articles []news.Article) string {
	var b strings.Builder

	riskProfile := user.RiskProfile
	if riskProfile == "" {
		riskProfile = model.DefaultRiskProfile
	}

	b.WriteString("User profile:\n")
	fmt.Fprintf(&b, "- id: %d\n", user.ID)
	fmt.Fprintf(&b, "- income: %s\n", money(user.MonthlyIncome))
	fmt.Fprintf(&b, "- monthly_budget: %s\n", money(user.MonthlyBudget))
	fmt.Fprintf(&b, "- total_expenses: %s\n", money(user.TotalExpenses))
	fmt.Fprintf(&b, "- risk_profile: %s\n", riskProfile)
	fmt.Fprintf(&b, "- investable_cash: %s\n\n", money(user.InvestableCash))

	b.WriteString("Market snapshot:\n")
	lines := make([]string, 0, promptMarketEntries)
	for i, q := range snapshot {
		if i == promptMarketEntries {
			break
		}
		date, closePrice, ok := q.LatestClose()
		if !ok {
			lines = append(lines, fmt.Sprintf("- %s: unavailable", q.Symbol))
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %s on %s", q.Symbol, closePrice, date))
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n\n")

	b.WriteString("Recent business news:\n")
	titles := make([]string, len(articles))
	for i, a := range articles {
		titles[i] = "- " + a.Title
	}
	b.WriteString(strings.Join(titles, "\n"))
	b.WriteString("\n\n")

	b.WriteString(instructions)

	return b.String()
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return unknownValue
	}
	if exp := d.Decimal.Exponent(); exp < 0 {
		return d.Decimal.StringFixed(-exp)
	}
	return d.Decimal.String()
}
