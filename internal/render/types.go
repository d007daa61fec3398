package render

const (
	// Display values
	MissingValue = "<none>"
	NAValue      = "n/a"
	UnknownValue = "<unknown>"
	ZeroValue    = "0"
	Blank        = ""

	// ActionsColumn names the header-only column holding row actions.
	ActionsColumn = "ACTIONS"
)
