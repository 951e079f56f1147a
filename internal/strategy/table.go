package strategy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hexamon/hexaswag/internal/domain"
)

// DefaultTableFile is the name of the registry extension file looked up in
// the working directory.
const DefaultTableFile = ".hexaswag"

// Binding is one line of a registry extension file.
type Binding struct {
	Strategy domain.Strategy
	Name     string
}

// ParseTable reads a registry extension file. Each line holds a strategy
// name and a base name:
//
//	// calendar types from a third party package
//	datetime github.com/acme/civil.Date
//	wrapsingle github.com/acme/async.Promise
//
// Blank lines and lines starting with // are ignored.
func ParseTable(r io.Reader) ([]Binding, error) {
	var bindings []Binding
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments
		if strings.HasPrefix(line, "//") {
			continue
		}

		parts := strings.Fields(line)

		switch len(parts) {
		case 0:
			continue
		case 2:
			s, err := domain.ParseStrategy(parts[0])
			if err != nil {
				return nil, fmt.Errorf("could not parse strategy binding '%s': %w", line, err)
			}
			bindings = append(bindings, Binding{Strategy: s, Name: parts[1]})
		default:
			return nil, fmt.Errorf("could not parse strategy binding: '%s'", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading strategy file: %w", err)
	}

	return bindings, nil
}

// Load parses r and registers every binding.
func (r *Registry) Load(in io.Reader) error {
	bindings, err := ParseTable(in)
	if err != nil {
		return err
	}
	for _, b := range bindings {
		if err := r.Register(b.Strategy, b.Name); err != nil {
			return err
		}
	}
	return nil
}

// LoadFile registers the bindings of a file. A missing file is not an error.
func (r *Registry) LoadFile(path string) (bool, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not open strategy file %s: %w", path, err)
	}
	defer f.Close()

	if err := r.Load(f); err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return true, nil
}
