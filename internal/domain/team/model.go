package team

import "fmt"

// Team is one of the 48 tournament participants. Unresolved playoff slots
// are seeded as placeholder teams so fixtures can reference them before the
// intercontinental playoffs conclude.
type Team struct {
	ID            string
	Name          string
	Code          string
	GroupLetter   string
	IsPlaceholder bool
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
