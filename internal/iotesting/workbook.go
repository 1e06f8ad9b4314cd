package iotesting

import (
	"fmt"
	"time"

	"github.com/gnames/tfingest/pkg/extract"
	"github.com/gnames/tfingest/pkg/gridutil"
	"github.com/gnames/tfingest/pkg/layout"
	"github.com/gnames/tfingest/pkg/refdata"
	"github.com/gnames/tfingest/pkg/value"
	"github.com/gnames/tfingest/pkg/workbook"
)

// Project is a project of a synthetic return.
type Project struct {
	ID       string
	Name     string
	Location string
	Multiple bool
}

// Return describes a complete, valid return of one place. Its Workbook
// method lays the data out the way the reporting template does.
type Return struct {
	Round    int
	Fund     string
	FormType string
	Place    string
	Code     string
	Projects []Project
}

// TownDeal returns a Town Deal return of Bedford with two projects.
func TownDeal(round int) Return {
	return Return{
		Round:    round,
		Fund:     extract.TownDeal,
		FormType: refdata.FormTownDeal,
		Place:    "Bedford",
		Code:     "BED",
		Projects: []Project{
			{ID: "TD-BED-01", Name: "Station Quarter", Location: "Bedford Station, MK40 1SJ"},
			{
				ID: "TD-BED-02", Name: "Riverside Square",
				Location: "Site 1: MK40 1AA\nSite 2: MK42 9AD", Multiple: true,
			},
		},
	}
}

// HighStreets returns a Future High Streets Fund return of Heanor with
// one project.
func HighStreets(round int) Return {
	return Return{
		Round:    round,
		Fund:     extract.HighStreetsFund,
		FormType: refdata.FormHighStreetsFund,
		Place:    "Heanor",
		Code:     "HEA",
		Projects: []Project{
			{ID: "HS-HEA-01", Name: "Market Place", Location: "Market Place, DE75 7AA"},
		},
	}
}

// ProgrammeID returns the programme identifier of the return.
func (r Return) ProgrammeID() string {
	return r.Fund + "-" + r.Code
}

// Workbook builds the sheets of the return.
func (r Return) Workbook() workbook.Workbook {
	l, err := layout.ForRound(r.Round)
	if err != nil {
		panic(err)
	}
	wb := workbook.Workbook{}
	for _, s := range append(layout.FormSheets,
		layout.SheetProjectIdentifiers, layout.SheetPlaceIdentifiers) {
		wb.Set(s, 0, 0, value.Str(s))
	}
	r.startHere(wb, l)
	r.identifiers(wb)
	r.admin(wb)
	r.progress(wb, l)
	r.funding(wb)
	r.psi(wb)
	r.outputs(wb)
	r.outcomes(wb)
	r.risks(wb)
	r.signOff(wb)
	return wb
}

func str(s string) value.Value { return value.Str(s) }

func num(f float64) value.Value { return value.Float(f) }

func day(y int, m time.Month, d int) value.Value {
	return value.Time(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (r Return) title(n int) value.Value {
	return str(fmt.Sprintf("Project %d: %s", n+1, r.Projects[n].Name))
}

func (r Return) startHere(wb workbook.Workbook, l layout.RoundLayout) {
	wb.Set(layout.SheetStartHere, 5, 1, str(l.Period))
	wb.Set(layout.SheetStartHere, 7, 1, str(l.FormVersion))
}

func (r Return) identifiers(wb workbook.Workbook) {
	placeCol, projectCol := 1, 1
	if r.Fund == extract.HighStreetsFund {
		placeCol, projectCol = 4, 8
	}
	wb.Set(layout.SheetPlaceIdentifiers, 2, placeCol, str(r.Place))
	wb.Set(layout.SheetPlaceIdentifiers, 2, placeCol+1, str(r.Code))
	wb.Set(layout.SheetPlaceIdentifiers, 3, placeCol, str("Newark"))
	wb.Set(layout.SheetPlaceIdentifiers, 3, placeCol+1, str("NEW"))
	for i, p := range r.Projects {
		row := 3 + i
		wb.Set(layout.SheetProjectIdentifiers, row, projectCol, str(p.ID))
		wb.Set(layout.SheetProjectIdentifiers, row, projectCol+1, str(r.Place))
		wb.Set(layout.SheetProjectIdentifiers, row, projectCol+2, str(p.Name))
	}
	row := 3 + len(r.Projects)
	wb.Set(layout.SheetProjectIdentifiers, row, projectCol, str(r.Fund+"-NEW-01"))
	wb.Set(layout.SheetProjectIdentifiers, row, projectCol+1, str("Newark"))
	wb.Set(layout.SheetProjectIdentifiers, row, projectCol+2, str("Castle Gate"))
}

// placeQuestions are "Section A" questions from row 8 on. An empty
// question repeats the one above it.
var placeQuestions = [][3]string{
	{"Grant Recipient's Single Point of Contact", "Name", "Jane Doe"},
	{"", "Email", "jane.doe@example.org"},
	{"", "Telephone", "01234 567890"},
	{"Programme Senior Responsible Owner", "Name", "John Roe"},
	{"", "Email", "john.roe@example.org"},
	{"", "Telephone", "01234 567891"},
	{"Section 151 Officer", "Name", "Ann Poe"},
	{"", "Email", "ann.poe@example.org"},
	{"", "Telephone", "01234 567892"},
	{"Programme Manager", "Name", "Tom Moe"},
	{"", "Email", "tom.moe@example.org"},
	{"", "Telephone", "01234 567893"},
	{"Please provide a link to your programme webpage", "Link", "https://example.org"},
}

func (r Return) admin(wb workbook.Workbook) {
	s := layout.SheetProjectAdmin
	wb.Set(s, 6, 2, str(extract.QuestionFundType))
	wb.Set(s, 6, 3, str("Fund Type"))
	wb.Set(s, 6, 4, str(r.FormType))
	wb.Set(s, 7, 2, str(extract.QuestionPlaceName))
	wb.Set(s, 7, 3, str("Place Name"))
	wb.Set(s, 7, 4, str(r.Place))
	for i, q := range placeQuestions {
		row := 8 + i
		if q[0] != "" {
			wb.Set(s, row, 2, str(q[0]))
		}
		wb.Set(s, row, 3, str(q[1]))
		wb.Set(s, row, 4, str(q[2]))
	}

	for i, p := range r.Projects {
		row := 26 + i
		wb.Set(s, row, 4, str(p.Name))
		wb.Set(s, row, 5, str("Transport"))
		if p.Multiple {
			wb.Set(s, row, 6, str("Multiple"))
			wb.Set(s, row, 9, str("Yes"))
			wb.Set(s, row, 10, str(p.Location))
			wb.Set(s, row, 11, str("52.134, -0.466; 52.129, -0.461"))
			continue
		}
		wb.Set(s, row, 6, str("Single"))
		wb.Set(s, row, 7, str(p.Location))
		wb.Set(s, row, 8, str("52.136, -0.479"))
		wb.Set(s, row, 9, str("No"))
	}
}

func (r Return) progress(wb workbook.Workbook, l layout.RoundLayout) {
	s := layout.SheetProgrammeProgress
	for i := range 7 {
		row := 6 + i
		wb.Set(s, row, 2, str(fmt.Sprintf("Programme question %d", i+1)))
		wb.Set(s, row, 3, str(fmt.Sprintf("Programme answer %d", i+1)))
	}

	header := []string{"Project Name", "Start Date - mmm/yy (e.g. Dec-22)",
		"Completion Date -\n mmm/yy (e.g. Dec-22)"}
	if l.Extended {
		header = append(header, "Current Project Delivery Stage")
	}
	header = append(header, "Project Delivery Status")
	if l.Extended {
		header = append(header, "Leading Factor of Delay")
	}
	header = append(header, "Project Adjustment Request Status", "Delivery (RAG)",
		"Spend (RAG)", "Risk (RAG)", "Commentary on Status and RAG Ratings",
		"Most Important Upcoming Comms Milestone",
		"Date of Most Important Upcoming Comms Milestone (e.g. Dec-22)")
	for i, h := range header {
		wb.Set(s, 18, 2+i, str(h))
	}

	for i, p := range r.Projects {
		row := 19 + i
		vals := []value.Value{str(p.Name), day(2022, time.June, 1), day(2025, time.March, 1)}
		if l.Extended {
			vals = append(vals, str("Project delivery"))
		}
		vals = append(vals, str("2. Ongoing - on track"))
		if l.Extended {
			vals = append(vals, str(gridutil.Unselected))
		}
		vals = append(vals, str("PAR not required"), str("2"), str("3"), str("2"),
			str("Works progressing as planned"), str("Opening event"),
			day(2025, time.May, 1))
		for j, v := range vals {
			wb.Set(s, row, 2+j, v)
		}
	}
}

// periodHeaders writes three header rows of half-year columns starting at
// column c. It returns the columns holding figures.
func periodHeaders(wb workbook.Workbook, s string, top, mid, low, c int, before bool) []int {
	var res []int
	if before {
		wb.Set(s, top, c, str("Before 2020/21"))
		res = append(res, c)
		c++
	}
	for y := 20; y < 26; y++ {
		wb.Set(s, top, c, str(fmt.Sprintf("Financial Year 20%d/%d", y, y+1)))
		wb.Set(s, mid, c, str("H1 (Apr-Sep)"))
		wb.Set(s, mid, c+1, str("H2 (Oct-Mar)"))
		res = append(res, c, c+1)
		c += 2
	}
	wb.Set(s, top, c, str("Beyond 2025/26"))
	res = append(res, c)
	wb.Set(s, top, c+1, str("Grand Total"))
	wb.Set(s, low, c+1, str("Total"))
	return res
}

const fundingUses = "Mix of programme and projects"

func (r Return) funding(wb workbook.Workbook) {
	s := layout.SheetFundingProfiles
	wb.Set(s, 18, 4, str(fundingUses))
	if r.Fund == extract.TownDeal {
		r.fundingQuestions(wb)
		periods := periodHeaders(wb, s, 22, 23, 24, 6, true)
		for i, pt := range []string{"Programme Management", "Project Management"} {
			row := 25 + i
			wb.Set(s, row, 2, str(pt))
			for _, c := range periods {
				wb.Set(s, row, c, num(500))
			}
		}
	}

	h := layout.Funding.Start
	periods := periodHeaders(wb, s, h+2, h+3, h+4, 5, true)
	towns := []string{
		extract.SourceCDELPrePayment,
		extract.PredefinedFundingSources[4],
		extract.SourceRDELPayment,
		extract.PredefinedFundingSources[1],
		extract.SourceRDELCommitted,
	}
	for n := range r.Projects {
		b := layout.Funding.Block(n)
		wb.Set(s, b, 2, r.title(n))
		for i, off := range []int{5, 6, 7, 9, 10} {
			wb.Set(s, b+off, 2, str(towns[i]))
			for _, c := range periods {
				wb.Set(s, b+off, c, num(1000))
			}
		}
		row := b + 17
		wb.Set(s, row, 2, str("Borough council capital grant"))
		wb.Set(s, row, 3, str("Local Authority"))
		wb.Set(s, row, 4, str("Yes"))
		for _, c := range periods {
			wb.Set(s, row, c, num(250.5))
		}
		wb.Set(s, b+layout.FundingCommentOffset, 2, str("Spend profile agreed with partners"))
	}
}

func (r Return) fundingQuestions(wb workbook.Workbook) {
	s := layout.SheetFundingProfiles
	wb.Set(s, 13, 2, str("Question"))
	indicators := map[int]string{
		4: "TD 5% CDEL Pre-Payment\n(Towns Fund FAQs p.46 - 49)",
		5: "TD RDEL Capacity Funding",
		8: "TD Accelerated Funding",
	}
	for c, ind := range indicators {
		wb.Set(s, 13, c, str(ind))
	}
	wb.Set(s, 13, 12, str("Guidance Notes"))

	wb.Set(s, 14, 2, str("Beyond these three funding types, have you received any "+
		"payments for specific projects?"))
	wb.Set(s, 14, 4, str("No"))
	// the funding uses answer of the first indicator is the programme-only
	// flag of funding profiles
	questions := []struct{ q, a string }{
		{"Please indicate how much of your allocation has been utilised (in £s)", "£1,250.00"},
		{"Please confirm whether the amount utilised represents your entire allocation", "Yes"},
		{"Please describe when funding was utilised and, if applicable, when any remaining " +
			"funding will be utilised", "During 2021/22"},
		{"Please select the option that best describes how the funding was, or will be, utilised",
			fundingUses},
		{"Please explain in detail how the funding has, or will be, utilised",
			"Business case development"},
	}
	for i, q := range questions {
		row := 15 + i
		wb.Set(s, row, 2, str(q.q))
		wb.Set(s, row, 12, str("See guidance"))
		for c := range indicators {
			wb.Set(s, row, c, str(q.a))
		}
	}
}

func (r Return) psi(wb workbook.Workbook) {
	s := layout.SheetPSI
	for i, p := range r.Projects {
		row := 12 + i
		wb.Set(s, row, 3, str(p.Name))
		wb.Set(s, row, 4, num(2500000))
		wb.Set(s, row, 5, num(1500000))
		wb.Set(s, row, 6, num(300000))
		wb.Set(s, row, 7, num(300000))
	}
}

func (r Return) outputs(wb workbook.Workbook) {
	s := layout.SheetOutputs
	h := layout.Outputs.Start
	periods := periodHeaders(wb, s, h+3, h+5, h+6, 4, false)
	for n := range r.Projects {
		wb.Set(s, layout.OutputNames.Block(n), 2, r.title(n))
		line := layout.Outputs.Block(n)
		for i, o := range []struct{ name, unit string }{
			{"# of new or improved car parking spaces", "Number of spaces"},
			{"Amount of new public realm", "sqm"},
		} {
			row := line + 8 + i
			wb.Set(s, row, 2, str(o.name+" "))
			wb.Set(s, row, 3, str(o.unit))
			for _, c := range periods {
				wb.Set(s, row, c, num(10))
			}
		}
	}
}

func (r Return) outcomes(wb workbook.Workbook) {
	s := layout.SheetOutcomes
	for k := range 10 {
		y := 20 + k
		wb.Set(s, 15, 5+k, str(fmt.Sprintf("Financial Year 20%d/%d", y, y+1)))
	}
	for i, p := range r.Projects {
		row := 21 + i
		wb.Set(s, row, 1, str("Business investment"))
		wb.Set(s, row, 2, str("£"))
		wb.Set(s, row, 3, str(p.Name))
		wb.Set(s, row, 4, str("Town"))
		for k := range 10 {
			wb.Set(s, row, 5+k, num(float64(1000*(k+1))))
		}
	}
	row := 21 + len(r.Projects)
	wb.Set(s, row, 1, str("Audience numbers for cultural events"))
	wb.Set(s, row, 2, str("Number of visitors"))
	wb.Set(s, row, 3, str("Multiple"))
	wb.Set(s, row, 4, str("Local Authority"))
	for k := range 10 {
		wb.Set(s, row, 5+k, num(200))
	}
}

func riskRow(wb workbook.Workbook, row int, name string) {
	vals := map[int]string{
		2: name, 3: "Rising Costs", 4: "Costs rise", 5: "Construction costs rise",
		6: "Scope reduced", 7: "3 - Medium impact", 8: "2 - Medium",
		10: "Fixed price contract", 11: "2 - Low impact", 12: "1 - Low",
		14: "1 - Remote", 15: "Programme Manager",
	}
	for c, v := range vals {
		wb.Set(layout.SheetRiskRegister, row, c, str(v))
	}
}

func (r Return) risks(wb workbook.Workbook) {
	for i := range 3 {
		riskRow(wb, 11+i, fmt.Sprintf("Programme risk %d", i+1))
	}
	for n, p := range r.Projects {
		line := layout.ProjectRisks.Block(n)
		wb.Set(layout.SheetRiskRegister, line, 3, str(p.Name))
		riskRow(wb, line+4, p.Name+" cost risk")
	}
}

func (r Return) signOff(wb workbook.Workbook) {
	vals := map[int]string{
		7: "Ann Poe", 8: "Section 151 Officer", 10: "01/04/2024",
		14: "Sam Boe", 15: "Town Board Chair", 17: "02/04/2024",
	}
	for row, v := range vals {
		wb.Set(layout.SheetReviewSignOff, row, 2, str(v))
	}
}
