// Package dealfile decodes deal inputs from files: a single deal from a YAML
// document, or a batch of deals from a CSV or XLSX sheet with a fixed header
// contract. All decoding validates the resulting DealInput before returning.
package dealfile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/cpq-ors/internal/model"
)

// NamedDeal is a decoded deal input with its display name.
type NamedDeal struct {
	Name  string
	Input model.DealInput
}

// dealDoc is the YAML wire form of a deal. Enums travel as labels and are
// parsed into their model types.
type dealDoc struct {
	Name                  string   `yaml:"name"`
	DealType              string   `yaml:"deal_type"`
	RevenueTypes          []string `yaml:"revenue_types"`
	ACV                   int64    `yaml:"acv"`
	GrowthACV             int64    `yaml:"growth_acv"`
	DiscountPct           float64  `yaml:"discount_pct"`
	TCVTermYears          int      `yaml:"tcv_term_years"`
	ProjectDurationMonths int      `yaml:"project_duration_months"`
	PSValue               int64    `yaml:"ps_value"`
	PaymentDays           int      `yaml:"payment_days"`
	Strategic             bool     `yaml:"strategic"`
	MinTermMet            bool     `yaml:"min_term_met"`
	BundleCompatible      bool     `yaml:"bundle_compatible"`
	NonStandardContract   bool     `yaml:"non_standard_contract"`
	BreakClauseNoPenalty  bool     `yaml:"break_clause_no_penalty"`
	CustomerHealth        int      `yaml:"customer_health"`
}

func (d *dealDoc) toInput() (model.DealInput, error) {
	dealType, err := model.ParseDealType(d.DealType)
	if err != nil {
		return model.DealInput{}, err
	}
	revenueTypes, err := model.ParseRevenueTypes(d.RevenueTypes)
	if err != nil {
		return model.DealInput{}, err
	}
	paymentDays, err := model.ParsePaymentTerms(d.PaymentDays)
	if err != nil {
		return model.DealInput{}, err
	}

	in := model.DealInput{
		DealType:              dealType,
		RevenueTypes:          revenueTypes,
		ACV:                   d.ACV,
		GrowthACV:             d.GrowthACV,
		DiscountPct:           decimal.NewFromFloat(d.DiscountPct),
		TCVTermYears:          d.TCVTermYears,
		ProjectDurationMonths: d.ProjectDurationMonths,
		PSValue:               d.PSValue,
		PaymentDays:           paymentDays,
		Strategic:             d.Strategic,
		MinTermMet:            d.MinTermMet,
		BundleCompatible:      d.BundleCompatible,
		NonStandardContract:   d.NonStandardContract,
		BreakClauseNoPenalty:  d.BreakClauseNoPenalty,
		CustomerHealth:        d.CustomerHealth,
	}
	if err := in.Validate(); err != nil {
		return model.DealInput{}, err
	}
	return in, nil
}

// LoadDeal reads a single deal from a YAML file.
func LoadDeal(path string) (NamedDeal, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: read %s", path)
	}

	var doc dealDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: parse %s", path)
	}

	in, err := doc.toInput()
	if err != nil {
		return NamedDeal{}, eris.Wrapf(err, "dealfile: %s", path)
	}

	name := doc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return NamedDeal{Name: name, Input: in}, nil
}

// LoadBatch reads a batch of deals from a CSV or XLSX file, dispatching on
// the file extension.
func LoadBatch(path string) ([]NamedDeal, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadBatchCSV(path)
	case ".xlsx":
		return loadBatchXLSX(path)
	default:
		return nil, eris.Errorf("dealfile: unsupported batch format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}
