package dealfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/cpq-ors/internal/model"
)

const dealYAML = `
name: acme-expansion
deal_type: Net New
revenue_types: [Project, License]
acv: 180000
discount_pct: 0.25
tcv_term_years: 2
project_duration_months: 14
ps_value: 90000
payment_days: 60
min_term_met: true
customer_health: 65
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDeal(t *testing.T) {
	deal, err := LoadDeal(writeFile(t, "deal.yaml", dealYAML))
	require.NoError(t, err)

	assert.Equal(t, "acme-expansion", deal.Name)
	assert.Equal(t, model.DealTypeNetNew, deal.Input.DealType)
	assert.Equal(t, model.RevenueTypes{model.RevenueProject, model.RevenueLicense}, deal.Input.RevenueTypes)
	assert.Equal(t, int64(180_000), deal.Input.ACV)
	assert.Equal(t, "0.25", deal.Input.DiscountPct.String())
	assert.Equal(t, model.PaymentNet60, deal.Input.PaymentDays)
	assert.True(t, deal.Input.MinTermMet)
	assert.False(t, deal.Input.Strategic)
}

func TestLoadDealDefaultsNameFromFile(t *testing.T) {
	yaml := `
deal_type: Upsell
revenue_types: [License]
acv: 100000
growth_acv: 25000
discount_pct: 0.1
tcv_term_years: 3
project_duration_months: 6
payment_days: 30
customer_health: 80
`
	deal, err := LoadDeal(writeFile(t, "globex-upsell.yaml", yaml))
	require.NoError(t, err)
	assert.Equal(t, "globex-upsell", deal.Name)
	assert.Equal(t, int64(25_000), deal.Input.GrowthACV)
}

func TestLoadDealErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDeal(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("unknown deal type", func(t *testing.T) {
		_, err := LoadDeal(writeFile(t, "deal.yaml", `
deal_type: renewal
revenue_types: [License]
acv: 1000
tcv_term_years: 1
project_duration_months: 1
payment_days: 30
customer_health: 50
`))
		assert.Error(t, err)
	})

	t.Run("out of range input", func(t *testing.T) {
		_, err := LoadDeal(writeFile(t, "deal.yaml", `
deal_type: Net New
revenue_types: [License]
acv: 1000
discount_pct: 1.5
tcv_term_years: 1
project_duration_months: 1
payment_days: 30
customer_health: 50
`))
		assert.Error(t, err)
	})
}

const batchHeader = "name,deal_type,revenue_types,acv,growth_acv,discount_pct,tcv_term_years,project_duration_months,ps_value,payment_days,strategic,min_term_met,bundle_compatible,non_standard_contract,break_clause_no_penalty,customer_health"

func TestLoadBatchCSV(t *testing.T) {
	csv := batchHeader + "\n" +
		"acme,Net New,Project|License,180000,0,0.25,2,14,90000,60,false,true,false,false,false,65\n" +
		"globex,Cancellation,Managed Service,200000,0,0,3,1,0,30,false,true,true,false,false,40\n"

	deals, err := LoadBatch(writeFile(t, "deals.csv", csv))
	require.NoError(t, err)
	require.Len(t, deals, 2)

	assert.Equal(t, "acme", deals[0].Name)
	assert.Equal(t, model.DealTypeNetNew, deals[0].Input.DealType)
	assert.Equal(t, model.RevenueTypes{model.RevenueProject, model.RevenueLicense}, deals[0].Input.RevenueTypes)
	assert.Equal(t, "0.25", deals[0].Input.DiscountPct.String())

	assert.Equal(t, "globex", deals[1].Name)
	assert.Equal(t, model.DealTypeCancellation, deals[1].Input.DealType)
	assert.Equal(t, 40, deals[1].Input.CustomerHealth)
}

func TestLoadBatchCSVErrors(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		_, err := LoadBatch(writeFile(t, "deals.csv",
			"name,deal_type,acv\nacme,Net New,1000\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "header missing columns")
	})

	t.Run("bad cell reports row number", func(t *testing.T) {
		csv := batchHeader + "\n" +
			"acme,Net New,Project,not-a-number,0,0.1,2,6,0,30,false,true,true,false,false,65\n"
		_, err := LoadBatch(writeFile(t, "deals.csv", csv))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "row 2")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadBatch(writeFile(t, "deals.json", "{}"))
		assert.Error(t, err)
	})
}

func createBatchXLSX(t *testing.T, rows [][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Deals")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "deals.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoadBatchXLSX(t *testing.T) {
	header := []string{"name", "deal_type", "revenue_types", "acv", "growth_acv", "discount_pct",
		"tcv_term_years", "project_duration_months", "ps_value", "payment_days", "strategic",
		"min_term_met", "bundle_compatible", "non_standard_contract", "break_clause_no_penalty",
		"customer_health"}
	path := createBatchXLSX(t, [][]string{
		header,
		{"initech", "Upsell", "License;Time & Material", "120000", "30000", "0.2", "3", "6", "0", "45",
			"false", "true", "true", "false", "false", "70"},
		{}, // blank rows are skipped
	})

	deals, err := LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, deals, 1)

	assert.Equal(t, "initech", deals[0].Name)
	assert.Equal(t, model.DealTypeUpsell, deals[0].Input.DealType)
	assert.Equal(t, model.RevenueTypes{model.RevenueLicense, model.RevenueTimeAndMaterial}, deals[0].Input.RevenueTypes)
	assert.Equal(t, int64(30_000), deals[0].Input.GrowthACV)
	assert.Equal(t, model.PaymentNet45, deals[0].Input.PaymentDays)
}

func TestBatchAndYAMLAgree(t *testing.T) {
	yamlDeal, err := LoadDeal(writeFile(t, "deal.yaml", dealYAML))
	require.NoError(t, err)

	csv := batchHeader + "\n" +
		"acme-expansion,Net New,Project|License,180000,0,0.25,2,14,90000,60,false,true,false,false,false,65\n"
	deals, err := LoadBatch(writeFile(t, "deals.csv", csv))
	require.NoError(t, err)
	require.Len(t, deals, 1)

	assert.Equal(t, yamlDeal.Input.DealType, deals[0].Input.DealType)
	assert.Equal(t, yamlDeal.Input.RevenueTypes, deals[0].Input.RevenueTypes)
	assert.Equal(t, yamlDeal.Input.ACV, deals[0].Input.ACV)
	assert.True(t, yamlDeal.Input.DiscountPct.Equal(deals[0].Input.DiscountPct))
	assert.Equal(t, yamlDeal.Input.PaymentDays, deals[0].Input.PaymentDays)
}
