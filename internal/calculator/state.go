package calculator

// State is the state of the calculator sequencer.
type State uint8

// States of the sequencer. The sequencer starts in Reset and cycles back to
// Inactive after every request, it never terminates.
const (
	Reset State = iota
	Inactive
	Storing
	Recalling
	Calculating
	Summing
	Division
	Dividing
	OutputIsReady
	StoringResult
)

var stateNames = [...]string{
	Reset:         "RESET",
	Inactive:      "INACTIVE",
	Storing:       "storing",
	Recalling:     "recalling",
	Calculating:   "calculating",
	Summing:       "summing",
	Division:      "division",
	Dividing:      "dividing",
	OutputIsReady: "output_is_ready",
	StoringResult: "storing_result",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
