package iorefdata_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	d, err := iorefdata.Load("")
	require.Nil(t, err)

	assert.Equal(t, "v4.3", d.TemplateVersion)
	org, ok := d.Organisation("Bedford")
	assert.True(t, ok)
	assert.Equal(t, "Bedford Borough Council", org)
	assert.Equal(t, []string{refdata.FormHighStreetsFund}, d.AllowedFundTypes("Heanor"))

	assert.Contains(t, d.Enum(refdata.EnumImpact), "4 - Significant impact ")
	assert.Equal(t, []string{"Yes", "No"}, d.Enum(refdata.EnumYesNo))
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, d.Enum(refdata.EnumRAG))
	assert.Equal(t, "Place",
		d.OutcomeCategory("Year on Year monthly % change in footfall"))
}

func TestLoadFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping file system test in short mode")
	}
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := iorefdata.Load(filepath.Join(dir, "none.yaml"))
		require.NotNil(t, err)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr))
		assert.Equal(t, errcode.RefDataReadError, gnErr.Code)
		assert.ErrorIs(t, gnErr.Err, os.ErrNotExist)
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.Nil(t, os.WriteFile(path, []byte("places: [\n"), 0644))
		_, err := iorefdata.Load(path)
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.RefDataDecodeError, gnErr.Code)
	})
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		msg  string
		data string
	}{
		{"no places", "template_version: v4.3\nenums: {a: [b]}\n"},
		{"bad fund type", `template_version: v4.3
places: [{name: A, organisation: B, fund_types: [Lottery]}]
enums: {a: [b]}
`},
		{"missing enum", `template_version: v4.3
places: [{name: A, organisation: B}]
enums: {a: [b]}
`},
		{"bad allocation", `template_version: v4.3
places: [{name: A, organisation: B}]
enums: {a: [b]}
allocations: [{id: TD-A-01, total: plenty}]
`},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := iorefdata.Decode([]byte(tt.data), "test")
			require.NotNil(t, err)
			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.RefDataInvalidError, gnErr.Code)
			assert.Equal(t, "test", gnErr.Vars[0])
		})
	}
}
