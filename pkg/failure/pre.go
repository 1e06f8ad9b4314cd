package failure

import "strings"

// MissingSheet is a required sheet absent from the workbook.
type MissingSheet struct {
	Sheet   string
	Message string
}

func (MissingSheet) Kind() Kind { return PreTransformation }

func (f MissingSheet) String() string { return f.Message }

// WrongInput is a fixed cell with a value outside the expected ones.
type WrongInput struct {
	Descriptor string
	Entered    string
	Expected   []string
	Message    string
}

func (WrongInput) Kind() Kind { return PreTransformation }

func (f WrongInput) String() string { return f.Message }

// ConflictingInput is a cell value that contradicts another cell.
type ConflictingInput struct {
	Descriptor string
	Entered    string
	Expected   []string
	Message    string
}

func (ConflictingInput) Kind() Kind { return PreTransformation }

func (f ConflictingInput) String() string { return f.Message }

// UnauthorisedSubmission is a return for a place or fund type the
// submitter is not allowed to report on.
type UnauthorisedSubmission struct {
	Descriptor string
	Entered    string
	Allowed    []string
}

func (UnauthorisedSubmission) Kind() Kind { return PreTransformation }

// String returns the message shown to the submitter.
func (f UnauthorisedSubmission) String() string {
	entered := f.Entered
	if entered == "" {
		entered = "None"
	}
	return strings.NewReplacer(
		"{entered_value}", entered,
		"{allowed_values}", strings.Join(f.Allowed, ", "),
	).Replace(MsgUnauthorised)
}
