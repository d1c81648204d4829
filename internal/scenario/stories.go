package scenario

import "strings"

// StartupCycles is the number of idle cycles before the first request.
const StartupCycles = 5

const averageStory = `
wait 5

store 1 5
store 2 7
store 4 9
recall 1 5
recall 2 7
recall 4 9

store 3 12
calculate 3
recall 4 8

store 1 3
store 2 10
store 3 20
calculate 3
recall 4 11

store 1 300
store 2 403
store 3 203
calculate 3
recall 4 302
`

// AverageStory returns the calculator acceptance script: three rounds of
// storing operands, calculating their average and checking the result.
func AverageStory() *Script {
	script, err := Parse("average", strings.NewReader(averageStory))
	if err != nil {
		panic(err)
	}
	return script
}

// StorageStory returns the storage unit acceptance script. It fills 50
// locations starting at address 20, then checks that stored numbers
// survive neighbouring stores and get replaced by a later store.
func StorageStory() *Script {
	script := &Script{Name: "storage"}
	script.Steps = append(script.Steps, Step{Op: Wait, Cycles: StartupCycles})

	for i := uint64(0); i < 50; i++ {
		script.Steps = append(script.Steps, Step{Op: Store, Address: i + 20, Value: i})
	}

	script.Steps = append(script.Steps,
		Step{Op: Store, Address: 90, Value: 0x5665},
		Step{Op: Store, Address: 91, Value: 0x8888},
		Step{Op: Recall, Address: 90, Expected: 0x5665, HasExpected: true},
		Step{Op: Recall, Address: 91, Expected: 0x8888, HasExpected: true},
		Step{Op: Store, Address: 90, Value: 0x7474},
		Step{Op: Recall, Address: 91, Expected: 0x8888, HasExpected: true},
		Step{Op: Recall, Address: 90, Expected: 0x7474, HasExpected: true},
	)
	return script
}

// AverageOf returns a script that calculates and checks nothing but the
// average of the operands.
func AverageOf(operands ...uint64) *Script {
	return &Script{
		Name: "values",
		Steps: []Step{
			{Op: Wait, Cycles: StartupCycles},
			{Op: Average, Operands: operands},
		},
	}
}
