package refdata_test

import (
	"testing"

	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *refdata.Data {
	d := &refdata.Data{
		TemplateVersion: "v4.3",
		Places: []refdata.Place{
			{Name: "Bedford", Organisation: "Bedford Borough Council",
				FundTypes: []string{refdata.FormTownDeal}},
			{Name: "Heanor ", Organisation: "Amber Valley Borough Council",
				FundTypes: []string{refdata.FormHighStreetsFund}},
		},
		OutputCategories: map[string]string{"Amount of floor space": "Regeneration"},
		Allocations: []refdata.Allocation{
			{ID: "TD-BED-01", CDEL: "1000.50", RDEL: "10", Total: "1010.50"},
			{ID: "HS-HEA", Total: "2000"},
		},
	}
	require.Nil(t, d.Build())
	return d
}

func TestPlaces(t *testing.T) {
	d := sample(t)
	org, ok := d.Organisation(" Heanor")
	assert.True(t, ok)
	assert.Equal(t, "Amber Valley Borough Council", org)

	_, ok = d.Organisation("Atlantis")
	assert.False(t, ok)

	assert.Equal(t, []string{"Bedford", "Heanor"}, d.PlaceNames())
	assert.Equal(t, []string{refdata.FormTownDeal}, d.AllowedFundTypes("Bedford"))
	assert.Len(t, d.PlaceFundTypes(), 2)
}

func TestAllocation(t *testing.T) {
	d := sample(t)
	tests := []struct {
		msg, id, kind, res string
		ok                 bool
	}{
		{"cdel", "TD-BED-01", "CDEL", "1000.5", true},
		{"rdel", "TD-BED-01", "RDEL", "10", true},
		{"total", "HS-HEA", "Total", "2000", true},
		{"empty cdel", "HS-HEA", "CDEL", "0", true},
		{"missing", "TD-XXX-01", "CDEL", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			res, ok := d.Allocation(tt.id, tt.kind)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.res, res.String())
		})
	}
}

func TestCategories(t *testing.T) {
	d := sample(t)
	assert.Equal(t, "Regeneration", d.OutputCategory("Amount of floor space"))
	assert.Equal(t, refdata.CustomCategory, d.OutputCategory("My output"))
	assert.Equal(t, refdata.CustomCategory, d.OutcomeCategory("My outcome"))
}

func TestBuildBadAmount(t *testing.T) {
	d := &refdata.Data{Allocations: []refdata.Allocation{{ID: "x", Total: "lots"}}}
	assert.NotNil(t, d.Build())
}
