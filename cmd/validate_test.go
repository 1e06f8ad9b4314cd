package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gnames/tfingest/internal/iostore"
	"github.com/gnames/tfingest/internal/iotesting"
	"github.com/gnames/tfingest/pkg/config"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/schema"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// workbooks saves a valid and an unsigned Town Deal return.
func workbooks(t *testing.T, round int) (string, string) {
	t.Helper()
	dir := t.TempDir()
	valid := filepath.Join(dir, "bedford.xlsx")
	unsigned := filepath.Join(dir, "unsigned.xlsx")

	require.Nil(t, iotesting.SaveXLSX(iotesting.TownDeal(round).Workbook(), valid))
	wb := iotesting.TownDeal(round).Workbook()
	wb.Set(layout.SheetReviewSignOff, 7, 2, value.Str(""))
	require.Nil(t, iotesting.SaveXLSX(wb, unsigned))
	return valid, unsigned
}

func TestValidateCmd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file system test in short mode")
	}
	valid, unsigned := workbooks(t, 4)

	t.Run("valid workbook", func(t *testing.T) {
		cfg = config.New()
		cmd := getValidateCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"-r", "4", valid})
		require.Nil(t, cmd.Execute())

		var reps []map[string]any
		require.Nil(t, json.Unmarshal(buf.Bytes(), &reps))
		require.Equal(t, 1, len(reps))
		assert.Equal(t, valid, reps[0]["file"])
		res, ok := reps[0]["result"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "success", res["status"])
		assert.NotContains(t, res, "tables")
	})

	t.Run("invalid workbook", func(t *testing.T) {
		cfg = config.New()
		cmd := getValidateCmd()
		buf := new(bytes.Buffer)
		cmd.SetOut(buf)
		cmd.SetArgs([]string{"-r", "4", "-F", "text", valid, unsigned})

		err := cmd.Execute()
		assert.ErrorIs(t, err, errNotValid)
		out := buf.String()
		assert.Contains(t, out, "bedford.xlsx")
		assert.Contains(t, out, "[Review & Sign-Off / C8]")
	})

	t.Run("missing round", func(t *testing.T) {
		cfg = config.New()
		cmd := getValidateCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetArgs([]string{valid})
		assert.NotNil(t, cmd.Execute())
	})

	t.Run("no files", func(t *testing.T) {
		cfg = config.New()
		cmd := getValidateCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"-r", "4"})
		assert.NotNil(t, cmd.Execute())
	})
}

func TestIngestCmdSQLite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping file system test in short mode")
	}
	valid, _ := workbooks(t, 6)
	db := filepath.Join(t.TempDir(), "towns.sqlite")

	cfg = config.New()
	cmd := getIngestCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-r", "6", "-F", "text", "--sqlite", db, valid})
	require.Nil(t, cmd.Execute())
	assert.Contains(t, buf.String(), "success")

	sink, err := iostore.NewSQLiteSink(db)
	require.Nil(t, err)
	defer sink.Close()
	cols, err := sink.Columns(context.Background(), schema.TableProjectProgress)
	require.Nil(t, err)
	assert.Contains(t, cols, schema.ColProjectID)
}

func TestOpenSinks(t *testing.T) {
	c := config.New()
	sinks, err := openSinks(context.Background(), c)
	require.Nil(t, err)
	assert.Empty(t, sinks)

	c.Update([]config.Option{
		config.OptIngestSQLitePath(filepath.Join(t.TempDir(), "a.sqlite")),
	})
	sinks, err = openSinks(context.Background(), c)
	require.Nil(t, err)
	require.Equal(t, 1, len(sinks))
	assert.Nil(t, sinks[0].Close())
}
