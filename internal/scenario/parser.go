package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrSyntax is returned for script lines that can not be parsed.
var ErrSyntax = errors.New("syntax error")

// Parse reads a script.
func Parse(name string, r io.Reader) (*Script, error) {
	script := &Script{Name: name}
	scanner := bufio.NewScanner(r)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, line, err)
		}
		step.Line = line
		script.Steps = append(script.Steps, step)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return script, nil
}

func parseStep(fields []string) (Step, error) {
	op := Op(strings.ToLower(fields[0]))
	args, err := parseNumbers(fields[1:])
	if err != nil {
		return Step{}, err
	}
	step := Step{Op: op}

	switch op {
	case Wait:
		if len(args) != 1 {
			return Step{}, argumentError(op, "<cycles>")
		}
		if args[0] > math.MaxInt32 {
			return Step{}, fmt.Errorf("%w: wait of %d cycles exceeds %d", ErrSyntax, args[0], math.MaxInt32)
		}
		step.Cycles = int(args[0])

	case Store:
		if len(args) != 2 {
			return Step{}, argumentError(op, "<address> <value>")
		}
		step.Address, step.Value = args[0], args[1]

	case Recall:
		if len(args) < 1 || len(args) > 2 {
			return Step{}, argumentError(op, "<address> [expected]")
		}
		step.Address = args[0]
		if len(args) == 2 {
			step.Expected, step.HasExpected = args[1], true
		}

	case Calculate:
		if len(args) != 1 {
			return Step{}, argumentError(op, "<divide_by>")
		}
		step.Value = args[0]

	case Average:
		if len(args) < 3 || len(args) > 4 {
			return Step{}, argumentError(op, "<a> <b> <c> [expected]")
		}
		step.Operands = args[:3]
		if len(args) == 4 {
			step.Expected, step.HasExpected = args[3], true
		}

	default:
		return Step{}, fmt.Errorf("%w: unknown operation '%s'", ErrSyntax, fields[0])
	}
	return step, nil
}

func parseNumbers(fields []string) ([]uint64, error) {
	numbers := make([]uint64, 0, len(fields))
	for _, field := range fields {
		n, err := strconv.ParseUint(field, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number '%s'", ErrSyntax, field)
		}
		numbers = append(numbers, n)
	}
	return numbers, nil
}

func argumentError(op Op, usage string) error {
	return fmt.Errorf("%w: %s expects %s", ErrSyntax, op, usage)
}
