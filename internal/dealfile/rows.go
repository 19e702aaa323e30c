package dealfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/cpq-ors/internal/model"
)

// Header contract shared by CSV and XLSX batches. Column order is free;
// unknown columns are ignored. revenue_types cells hold labels separated
// by "|" or ";".
var requiredColumns = []string{
	"deal_type",
	"revenue_types",
	"acv",
	"discount_pct",
	"tcv_term_years",
	"project_duration_months",
	"ps_value",
	"payment_days",
	"customer_health",
}

// headerIndex maps normalized column names to their positions.
func headerIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("dealfile: header missing columns: %s", strings.Join(missing, ", "))
	}
	return idx, nil
}

// rowReader extracts typed cells from one data row by column name.
type rowReader struct {
	idx   map[string]int
	cells []string
	row   int
	err   error
}

func (r *rowReader) cell(col string) string {
	i, ok := r.idx[col]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r *rowReader) int64Cell(col string) int64 {
	s := r.cell(col)
	if s == "" || r.err != nil {
		return 0
	}
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		r.err = eris.Errorf("dealfile: row %d: %s: not an integer: %q", r.row, col, s)
		return 0
	}
	return v
}

func (r *rowReader) intCell(col string) int {
	return int(r.int64Cell(col))
}

func (r *rowReader) boolCell(col string) bool {
	s := r.cell(col)
	if s == "" || r.err != nil {
		return false
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		r.err = eris.Errorf("dealfile: row %d: %s: not a boolean: %q", r.row, col, s)
		return false
	}
	return v
}

func (r *rowReader) decimalCell(col string) decimal.Decimal {
	s := r.cell(col)
	if s == "" || r.err != nil {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		r.err = eris.Errorf("dealfile: row %d: %s: not a number: %q", r.row, col, s)
		return decimal.Zero
	}
	return v
}

// decodeRow converts one data row into a NamedDeal. rowNum is 1-based and
// counts the header, matching what spreadsheet users see.
func decodeRow(idx map[string]int, cells []string, rowNum int) (NamedDeal, error) {
	r := &rowReader{idx: idx, cells: cells, row: rowNum}

	dealType, err := model.ParseDealType(r.cell("deal_type"))
	if err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: row %d", rowNum)
	}

	var labels []string
	for _, l := range strings.FieldsFunc(r.cell("revenue_types"), func(c rune) bool {
		return c == '|' || c == ';'
	}) {
		if l = strings.TrimSpace(l); l != "" {
			labels = append(labels, l)
		}
	}
	revenueTypes, err := model.ParseRevenueTypes(labels)
	if err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: row %d", rowNum)
	}

	in := model.DealInput{
		DealType:              dealType,
		RevenueTypes:          revenueTypes,
		ACV:                   r.int64Cell("acv"),
		GrowthACV:             r.int64Cell("growth_acv"),
		DiscountPct:           r.decimalCell("discount_pct"),
		TCVTermYears:          r.intCell("tcv_term_years"),
		ProjectDurationMonths: r.intCell("project_duration_months"),
		PSValue:               r.int64Cell("ps_value"),
		Strategic:             r.boolCell("strategic"),
		MinTermMet:            r.boolCell("min_term_met"),
		BundleCompatible:      r.boolCell("bundle_compatible"),
		NonStandardContract:   r.boolCell("non_standard_contract"),
		BreakClauseNoPenalty:  r.boolCell("break_clause_no_penalty"),
		CustomerHealth:        r.intCell("customer_health"),
	}
	if r.err != nil {
		return NamedDeal{}, r.err
	}

	paymentDays, err := model.ParsePaymentTerms(r.intCell("payment_days"))
	if err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: row %d", rowNum)
	}
	in.PaymentDays = paymentDays

	if err := in.Validate(); err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: row %d", rowNum)
	}

	name := r.cell("name")
	if name == "" {
		name = fmt.Sprintf("row %d", rowNum)
	}
	return NamedDeal{Name: name, Input: in}, nil
}

// loadBatchCSV reads a batch from a CSV file with a header row.
func loadBatchCSV(path string) ([]NamedDeal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dealfile: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1 // rows may omit trailing optional columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrapf(err, "dealfile: read %s", path)
	}
	if len(records) == 0 {
		return nil, eris.Errorf("dealfile: %s is empty", path)
	}

	idx, err := headerIndex(records[0])
	if err != nil {
		return nil, err
	}

	deals := make([]NamedDeal, 0, len(records)-1)
	for i, cells := range records[1:] {
		deal, err := decodeRow(idx, cells, i+2)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, nil
}
