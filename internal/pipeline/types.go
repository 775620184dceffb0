package pipeline

// Operator joins one step of a compound line to the next.
type Operator string

const (
	OpSequential Operator = ";"  // run the next step regardless
	OpAndThen    Operator = "&&" // run the next step only if this one succeeded
	OpOrElse     Operator = "||" // run the next step only if this one failed
)

// Step is one sub-line of a compound line.
type Step struct {
	Line string   // the sub-line, trimmed; may be empty
	Op   Operator // operator after this step; empty for the last step
}

// Command is a compound line split into steps.
type Command struct {
	Steps []Step
}
