package cli

import "fmt"

type noMatchError struct {
	filter string
}

func (e noMatchError) Error() string {
	return fmt.Sprintf("no action matches %q", e.filter)
}

func errNoMatch(filter string) error {
	return noMatchError{filter: filter}
}

type existsError struct {
	path string
}

func (e existsError) Error() string {
	return fmt.Sprintf("%s already exists (use --force to overwrite)", e.path)
}
