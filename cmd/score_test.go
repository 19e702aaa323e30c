package main

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/cpq-ors/internal/engine"
	"github.com/sells-group/cpq-ors/internal/model"
)

func TestDealFromFlags(t *testing.T) {
	cmd := scoreCmd
	f := cmd.Flags()
	require.NoError(t, f.Set("name", "acme"))
	require.NoError(t, f.Set("deal-type", "net_new"))
	require.NoError(t, f.Set("revenue-types", "project,license"))
	require.NoError(t, f.Set("acv", "180000"))
	require.NoError(t, f.Set("discount", "0.25"))
	require.NoError(t, f.Set("term-years", "2"))
	require.NoError(t, f.Set("project-months", "14"))
	require.NoError(t, f.Set("ps-value", "90000"))
	require.NoError(t, f.Set("payment-days", "60"))
	require.NoError(t, f.Set("customer-health", "65"))

	deal, err := dealFromFlags(cmd)
	require.NoError(t, err)

	assert.Equal(t, "acme", deal.Name)
	assert.Equal(t, model.DealTypeNetNew, deal.Input.DealType)
	assert.Equal(t, model.RevenueTypes{model.RevenueProject, model.RevenueLicense}, deal.Input.RevenueTypes)
	assert.Equal(t, int64(180_000), deal.Input.ACV)
	assert.Equal(t, "0.25", deal.Input.DiscountPct.String())
	assert.Equal(t, model.PaymentNet60, deal.Input.PaymentDays)
}

func TestDealFromFlagsRejectsBadDealType(t *testing.T) {
	cmd := scoreCmd
	require.NoError(t, cmd.Flags().Set("deal-type", "renewal"))
	t.Cleanup(func() { _ = cmd.Flags().Set("deal-type", "net_new") })

	_, err := dealFromFlags(cmd)
	assert.Error(t, err)
}

func TestFilterByMinScore(t *testing.T) {
	deals := []model.ScoredDeal{
		{Name: "low", Result: model.ScoreResult{FinalORS: decimal.NewFromInt(16)}},
		{Name: "edge", Result: model.ScoreResult{FinalORS: decimal.NewFromInt(60)}},
		{Name: "high", Result: model.ScoreResult{FinalORS: decimal.NewFromInt(95)}},
	}

	assert.Len(t, filterByMinScore(deals, 0), 3)

	kept := filterByMinScore(deals, 60)
	require.Len(t, kept, 2)
	assert.Equal(t, "edge", kept[0].Name)
	assert.Equal(t, "high", kept[1].Name)
}

func TestFormatRules(t *testing.T) {
	var buf bytes.Buffer
	formatRules(&buf, engine.DefaultConfig())

	out := buf.String()
	assert.Contains(t, out, "up to $50,000")
	assert.Contains(t, out, "x0.8")
	assert.Contains(t, out, "above previous tier  x2.0")
	assert.Contains(t, out, "low    <= 30")
	assert.Contains(t, out, "medium <= 60")
	assert.Contains(t, out, "break clause score           95")
	assert.Contains(t, out, "delivery lead  Delivery Lead")
}
