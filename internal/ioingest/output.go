package ioingest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/tfingest/pkg/pipeline"
)

type reportJSON struct {
	File     string           `json:"file"`
	Duration string           `json:"duration"`
	Error    string           `json:"error,omitempty"`
	Result   *pipeline.Result `json:"result,omitempty"`
}

// MarshalJSON renders a report with the file name and either the error
// or the pipeline result.
func (r Report) MarshalJSON() ([]byte, error) {
	res := reportJSON{
		File:     r.Path,
		Duration: gnfmt.TimeString(r.Duration.Seconds()),
	}
	if r.Err != nil {
		res.Error = errorText(r.Err)
	} else {
		res.Result = &r.Result
	}
	return json.Marshal(res)
}

// Format renders reports as "json" or "text". Tables of valid
// submissions are included only in JSON with withTables set.
func Format(reps []Report, format string, withTables bool) (string, error) {
	if format == "text" {
		return formatText(reps), nil
	}

	if !withTables {
		reps = withoutTables(reps)
	}
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(reps)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

func withoutTables(reps []Report) []Report {
	res := make([]Report, len(reps))
	for i, r := range reps {
		r.Result.Tables = nil
		res[i] = r
	}
	return res
}

func formatText(reps []Report) string {
	var sb strings.Builder
	for i, r := range reps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s (%s)\n", r.Path,
			gnfmt.TimeString(r.Duration.Seconds()))
		if r.Err != nil {
			fmt.Fprintf(&sb, "  error: %s\n", errorText(r.Err))
			continue
		}
		textResult(&sb, r.Result)
	}
	return sb.String()
}

func textResult(sb *strings.Builder, res pipeline.Result) {
	fmt.Fprintf(sb, "  %s: %s\n", res.Status, res.Detail())
	switch res.Status {
	case pipeline.StatusSuccess:
		md := res.Metadata
		fmt.Fprintf(sb, "  submission %s, programme %s (%s), round %d\n",
			md.SubmissionID, md.ProgrammeID, md.ProgrammeName, md.ReportingRound)
		for _, tc := range md.Tables {
			fmt.Fprintf(sb, "    %-28s %8s\n", tc.Table,
				humanize.Comma(int64(tc.Rows)))
		}
	case pipeline.StatusInvalid:
		for _, e := range res.PreTransformationErrors {
			fmt.Fprintf(sb, "  - %s\n", e)
		}
		for _, m := range res.ValidationErrors {
			loc := []string{m.Sheet}
			if m.Section != "" && m.Section != "-" {
				loc = append(loc, m.Section)
			}
			if c := m.CellIndex(); c != "" {
				loc = append(loc, c)
			}
			fmt.Fprintf(sb, "  - [%s] %s\n", strings.Join(loc, " / "),
				m.Description)
		}
	case pipeline.StatusInternal:
		fmt.Fprintf(sb, "  failure id: %s\n", res.ID)
		for _, e := range res.InternalErrors {
			fmt.Fprintf(sb, "  - %s\n", e)
		}
	}
}

// errorText returns the user message of gn errors and the error text of
// other errors.
func errorText(err error) string {
	if gnErr, ok := err.(*gn.Error); ok && gnErr.Msg != "" {
		msg := fmt.Sprintf(gnErr.Msg, gnErr.Vars...)
		return strings.NewReplacer("<em>", "", "</em>", "").Replace(msg)
	}
	return err.Error()
}
