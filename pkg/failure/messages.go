package failure

// Messages shown to submitters. Texts with placeholders are formatted by
// callers with fmt.Sprintf or strings.Replace.
const (
	MsgBlank                    = "The cell is blank but is required."
	MsgBlankIfProjectIncomplete = "The cell is blank but is required for incomplete projects."

	MsgBlankUnitOfMeasurement = MsgBlank + "Check you’ve entered or generated a unit of " +
		"measurement.\nIf it’s for a custom indicator, enter the unit of measurement into " +
		"the blank cell.\nOtherwise, select an indicator from the dropdown list provided in " +
		"cell {cell}. This will add a unit of measurement to the empty cell."
	MsgBlankZero = MsgBlank + " Enter a value, even if it’s zero."
	MsgBlankPSI  = MsgBlank + " Enter why the private sector investment gap is greater than zero."

	MsgProjectRisks   = "You’ve not entered any risks for this project. You must enter at least 1."
	MsgProgrammeRisks = "You’ve not entered enough programme level risks. You must enter at least 3."

	MsgWrongTypeDate = "You entered {wrong_type} instead of a date. Check the cell is " +
		"formatted as a date, for example, Dec-22 or Jun-23"
	MsgWrongTypeCurrency = "You entered text instead of a number. Check the cell is formatted " +
		"as currency and only enter numbers. For example, £5,588.13 or £238,062.50"
	MsgWrongTypeNumerical = "You entered text instead of a number. Remove any units of " +
		"measurement and only use numbers, for example, 9."
	MsgWrongTypeUnknown = "You entered data we do not recognise. Check the data is correct."

	MsgDropdown = "You’ve entered your own content, instead of selecting from the dropdown " +
		"list provided. Select an option from the dropdown list."
	MsgDuplication  = "You entered duplicate data. Remove or replace the duplicate data."
	MsgUnauthorised = "You’re not authorised to submit for {entered_value}. You can only " +
		"submit for {allowed_values}."
	MsgNegativeNumber = "You’ve entered a negative number. Enter a positive number."
	MsgPostcode       = "You entered an invalid postcode. Enter a full UK postcode, for " +
		"example SW1A 2AA."

	MsgInvalidProjectDates = "The project start date cannot be after the project " +
		"completion date. Check the dates are correct."
	MsgProjectStartMismatch = "The project delivery status is \"1. Not yet started\" but the " +
		"start date is on or before the end of the reporting period. Check the status " +
		"and start date are correct."
	MsgInvalidOutcomeProject = "You must select a project from the drop-down provided for " +
		"'Relevant project(s)'. Do not populate the cell with your own content"
	MsgProjectOrProgramme = "The row must relate either to a project or to the programme, " +
		"not both or neither."

	MsgOverspend = "The total {expense_type} amount is greater than your allocation. Check " +
		"the data for each financial year is correct."
	MsgOverspendProgramme = "The grand total amounts are greater than your allocation. " +
		"Check the data for each financial year is correct."
	MsgMissingOtherFundingSources = "You’ve not entered any Other Funding Sources. You must " +
		"enter at least 1 over all projects."
	MsgBlankSignOff = "In tab '8 - Review & Sign-Off', cell {cell} is blank but is required."
)

// BlankMessages are messages that report blank cells. Other messages for
// the same cell are suppressed when one of them is present.
var BlankMessages = []string{
	MsgBlank, MsgBlankZero, MsgBlankPSI, MsgBlankUnitOfMeasurement,
}
