package cmd

import (
	"bytes"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/tfingest/internal/iorefdata"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/errcode"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeSchema(t *testing.T) {
	rd, err := iorefdata.Load("")
	require.Nil(t, err)
	sch, err := schema.TownsFund(4, rd)
	require.Nil(t, err)

	all, err := describeSchema(sch, nil)
	require.Nil(t, err)
	assert.Equal(t, len(sch), len(all))

	res, err := describeSchema(sch, []string{schema.TableRisks})
	require.Nil(t, err)
	require.Equal(t, 1, len(res))
	assert.Equal(t, schema.TableRisks, res[0].Name)
	var names []string
	for _, c := range res[0].Columns {
		names = append(names, c.Name)
	}
	assert.Subset(t, names, schema.RiskColumns)

	_, err = describeSchema(sch, []string{"Nonexistent"})
	require.NotNil(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SchemaUnknownTableError, gnErr.Code)
}

func TestFormatSchema(t *testing.T) {
	tables := []tableInfo{{
		Name: "Outcome_Data",
		Columns: []columnInfo{
			{Name: "Outcome", Type: "text", Values: []string{"a", "b"}},
			{Name: "Amount", Type: "number", Nullable: true},
			{Name: "Project ID", Type: "text", Unique: true},
		},
	}}

	txt, err := formatSchema(tables, "text")
	require.Nil(t, err)
	assert.Contains(t, txt, "Outcome_Data\n")
	assert.Contains(t, txt, "not null [2 values]")
	assert.Contains(t, txt, "not null unique")

	js, err := formatSchema(tables, "json")
	require.Nil(t, err)
	assert.Contains(t, js, `"name": "Outcome_Data"`)
	assert.Contains(t, js, `"values": [`)
}

func TestSchemaCmd(t *testing.T) {
	cfg = config.New()
	cmd := getSchemaCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-r", "3", "-F", "text", schema.TableRisks})
	require.Nil(t, cmd.Execute())
	assert.Contains(t, buf.String(), "RiskName")
}
