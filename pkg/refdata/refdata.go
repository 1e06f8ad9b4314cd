// Package refdata holds static reference data of Towns Fund returns:
// places and their organisations, allowed fund types, funding allocations,
// output and outcome categories and dropdown values.
//
// Data is loaded once at start up by internal/iorefdata and is read-only
// afterwards, so concurrent ingests can share it.
package refdata

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// CustomCategory is the category of outputs and outcomes that are not in
// the reference lists.
const CustomCategory = "Custom"

// Names of enums used by schemas and rules.
const (
	EnumAdjustmentRequestStatus = "adjustment_request_status"
	EnumDeliveryStage           = "delivery_stage"
	EnumDeliveryStatus          = "delivery_status"
	EnumDelay                   = "delay"
	EnumState                   = "state"
	EnumFundingSourceCategory   = "funding_source_category"
	EnumGeographyIndicator      = "geography_indicator"
	EnumRiskCategory            = "risk_category"
	EnumImpact                  = "impact"
	EnumLikelihood              = "likelihood"
	EnumProximity               = "proximity"
	EnumInterventionTheme       = "intervention_theme"
	EnumFundingUses             = "funding_uses"
	EnumMultiplicity            = "multiplicity"
	EnumRAG                     = "rag"
	EnumYesNo                   = "yes_no"
	EnumFundTypeID              = "fund_type_id"
)

// RequiredEnums lists enums every reference file must define.
var RequiredEnums = []string{
	EnumAdjustmentRequestStatus, EnumDeliveryStage, EnumDeliveryStatus,
	EnumDelay, EnumState, EnumFundingSourceCategory, EnumGeographyIndicator,
	EnumRiskCategory, EnumImpact, EnumLikelihood, EnumProximity,
	EnumInterventionTheme, EnumFundingUses, EnumMultiplicity, EnumRAG,
	EnumYesNo, EnumFundTypeID,
}

// Form fund types as they appear in the "Project Admin" dropdown.
const (
	FormTownDeal        = "Town_Deal"
	FormHighStreetsFund = "Future_High_Street_Fund"
)

// Data is the reference data.
type Data struct {
	// TemplateVersion is the version of the round 4 template, for example
	// "v4.3".
	TemplateVersion string `yaml:"template_version" validate:"required"`

	Places []Place `yaml:"places" validate:"required,dive"`

	OutputCategories  map[string]string `yaml:"output_categories"`
	OutcomeCategories map[string]string `yaml:"outcome_categories"`

	// Enums maps enum names to allowed dropdown values.
	Enums map[string][]string `yaml:"enums" validate:"required,dive,required"`

	Allocations []Allocation `yaml:"allocations" validate:"dive"`

	places map[string]Place
	allocs map[string]allocation
}

// Place is a Towns Fund place.
type Place struct {
	Name         string   `yaml:"name" validate:"required"`
	Organisation string   `yaml:"organisation" validate:"required"`
	FundTypes    []string `yaml:"fund_types" validate:"dive,oneof=Town_Deal Future_High_Street_Fund"`
}

// Allocation is the funding granted to a Town Deal project or a Future
// High Streets Fund programme. Amounts are decimal strings in pounds.
type Allocation struct {
	ID    string `yaml:"id" validate:"required"`
	CDEL  string `yaml:"cdel" validate:"omitempty,numeric"`
	RDEL  string `yaml:"rdel" validate:"omitempty,numeric"`
	Total string `yaml:"total" validate:"required,numeric"`
}

type allocation struct {
	cdel, rdel, total decimal.Decimal
}

// Build indexes places and allocations. It must be called once after the
// data is decoded and validated.
func (d *Data) Build() error {
	d.places = make(map[string]Place, len(d.Places))
	for _, p := range d.Places {
		d.places[strings.TrimSpace(p.Name)] = p
	}
	d.allocs = make(map[string]allocation, len(d.Allocations))
	for _, a := range d.Allocations {
		var al allocation
		var err error
		if al.total, err = decimal.NewFromString(a.Total); err != nil {
			return err
		}
		if al.cdel, err = parseOptional(a.CDEL); err != nil {
			return err
		}
		if al.rdel, err = parseOptional(a.RDEL); err != nil {
			return err
		}
		d.allocs[a.ID] = al
	}
	return nil
}

// PlaceNames returns all place names in sorted order.
func (d *Data) PlaceNames() []string {
	res := slices.Collect(maps.Keys(d.places))
	slices.Sort(res)
	return res
}

// Organisation returns the canonical organisation of a place.
func (d *Data) Organisation(place string) (string, bool) {
	p, ok := d.places[strings.TrimSpace(place)]
	return p.Organisation, ok
}

// AllowedFundTypes returns the form fund types a place may submit for.
func (d *Data) AllowedFundTypes(place string) []string {
	return d.places[strings.TrimSpace(place)].FundTypes
}

// PlaceFundTypes maps every place to its allowed form fund types.
func (d *Data) PlaceFundTypes() map[string][]string {
	res := make(map[string][]string, len(d.places))
	for k, p := range d.places {
		res[k] = p.FundTypes
	}
	return res
}

// Allocation returns the CDEL, RDEL and Total allocation by expense type
// for a project or programme id.
func (d *Data) Allocation(id, expenseType string) (decimal.Decimal, bool) {
	a, ok := d.allocs[id]
	if !ok {
		return decimal.Zero, false
	}
	switch expenseType {
	case "CDEL":
		return a.cdel, true
	case "RDEL":
		return a.rdel, true
	default:
		return a.total, true
	}
}

// OutputCategory returns the category of an output, or CustomCategory.
func (d *Data) OutputCategory(name string) string {
	if c, ok := d.OutputCategories[name]; ok {
		return c
	}
	return CustomCategory
}

// OutcomeCategory returns the category of an outcome, or CustomCategory.
func (d *Data) OutcomeCategory(name string) string {
	if c, ok := d.OutcomeCategories[name]; ok {
		return c
	}
	return CustomCategory
}

// Enum returns the allowed values of a named enum.
func (d *Data) Enum(name string) []string {
	return d.Enums[name]
}

func parseOptional(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
