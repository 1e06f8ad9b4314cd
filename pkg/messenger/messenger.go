// Package messenger turns validation failures into messages addressed to
// cells of the submitted spreadsheet.
//
// A messenger knows the form of one fund: how internal tables and columns
// map back to sheets, sections and cell letters. FailuresToMessages
// applies a messenger to a list of failures, removes duplicates and
// groups messages that differ only by their cells.
package messenger

import (
	"cmp"
	"encoding/json"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/tfingest/pkg/failure"
	"github.com/xuri/excelize/v2"
)

// Message is a validation message shown to a submitter.
type Message struct {
	// Sheet is the name of the form tab. It is empty for messages that do
	// not refer to the form, such as unauthorised submissions.
	Sheet string

	// Section is the section of the tab.
	Section string

	// CellIndexes are spreadsheet cells, for example "C12" or
	// "F33 to Y33".
	CellIndexes []string

	// Description is the text of the message.
	Description string

	// ErrorType is the name of the failure kind the message comes from.
	ErrorType string
}

// CellIndex returns comma-joined cells of the message.
func (m Message) CellIndex() string {
	return strings.Join(m.CellIndexes, ", ")
}

func (m Message) key() string {
	return strings.Join([]string{
		m.Sheet, m.Section, m.CellIndex(), m.Description, m.ErrorType,
	}, "\x00")
}

type messageJSON struct {
	Sheet       *string `json:"sheet"`
	Section     *string `json:"section"`
	CellIndex   *string `json:"cell_index"`
	Description string  `json:"description"`
	ErrorType   string  `json:"error_type"`
}

// MarshalJSON renders empty locations as nulls.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Sheet:       optional(m.Sheet),
		Section:     optional(m.Section),
		CellIndex:   optional(m.CellIndex()),
		Description: m.Description,
		ErrorType:   m.ErrorType,
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Messenger translates failures of one fund into messages.
type Messenger interface {
	// ToMessage returns the message of a user failure. A failure the
	// messenger does not know is an error.
	ToMessage(f failure.Failure) (Message, error)
}

// FailuresToMessages translates failures, removes duplicates and messages
// about cells already reported as blank, and groups the rest by sheet,
// section and description.
func FailuresToMessages(fs []failure.Failure, m Messenger) ([]Message, error) {
	msgs := make([]Message, 0, len(fs))
	seen := make(map[string]struct{})
	for _, f := range fs {
		msg, err := m.ToMessage(f)
		if err != nil {
			return nil, err
		}
		// melted rows repeat the same message
		k := msg.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		msgs = append(msgs, msg)
	}
	slices.SortStableFunc(msgs, compareMessages)
	msgs = suppressBlanks(msgs)
	return group(msgs), nil
}

// PreTransformationMessages returns texts of pre-transformation failures.
func PreTransformationMessages(fs []failure.Failure) []string {
	res := make([]string, 0, len(fs))
	for _, f := range failure.Filter(fs, failure.PreTransformation) {
		res = append(res, f.String())
	}
	return res
}

func compareMessages(a, b Message) int {
	return cmp.Or(
		cmp.Compare(a.Sheet, b.Sheet),
		cmp.Compare(a.Section, b.Section),
		slices.Compare(a.CellIndexes, b.CellIndexes),
		cmp.Compare(a.Description, b.Description),
	)
}

func isBlank(m Message) bool {
	return slices.Contains(failure.BlankMessages, m.Description)
}

// suppressBlanks drops messages that refer to a cell of a blank message.
// Cells are compared within a sheet, so project and programme risk
// sections share their cells.
func suppressBlanks(msgs []Message) []Message {
	type cell struct{ sheet, index string }
	blank := make(map[cell]struct{})
	for _, m := range msgs {
		if !isBlank(m) {
			continue
		}
		for _, c := range m.CellIndexes {
			blank[cell{m.Sheet, c}] = struct{}{}
		}
	}

	res := msgs[:0]
	for _, m := range msgs {
		covered := slices.ContainsFunc(m.CellIndexes, func(c string) bool {
			_, ok := blank[cell{m.Sheet, c}]
			return ok
		})
		if covered && !isBlank(m) {
			continue
		}
		res = append(res, m)
	}
	return res
}

func group(msgs []Message) []Message {
	type groupKey struct{ sheet, section, desc, errType string }
	idx := make(map[groupKey]int)
	var res []Message
	for _, m := range msgs {
		k := groupKey{m.Sheet, m.Section, m.Description, m.ErrorType}
		if i, ok := idx[k]; ok {
			res[i].CellIndexes = append(res[i].CellIndexes, m.CellIndexes...)
			continue
		}
		idx[k] = len(res)
		m.CellIndexes = slices.Clone(m.CellIndexes)
		res = append(res, m)
	}
	for i := range res {
		SortCells(res[i].CellIndexes)
	}
	return res
}

var cellRe = regexp.MustCompile(`^([A-Z]+)(\d*)`)

// SortCells sorts cell indexes by the length of the column name, then by
// the column name and then by the row number.
func SortCells(cells []string) {
	slices.SortStableFunc(cells, func(a, b string) int {
		ca, ra := splitCell(a)
		cb, rb := splitCell(b)
		return cmp.Or(
			cmp.Compare(len(ca), len(cb)),
			cmp.Compare(ca, cb),
			cmp.Compare(ra, rb),
			cmp.Compare(a, b),
		)
	})
}

// splitCell returns the column and row of the first cell of an index
// such as "H12 or K12".
func splitCell(idx string) (string, int) {
	first, _, _ := strings.Cut(idx, " ")
	if col, row, err := excelize.SplitCellName(first); err == nil {
		return col, row
	}
	m := cellRe.FindStringSubmatch(first)
	if m == nil {
		return "", 0
	}
	row, _ := strconv.Atoi(m[2])
	return m[1], row
}
