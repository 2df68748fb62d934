package manager

import "fmt"

// Manager is a human participant in the league. Identity is a free-text
// display name, not an authenticated account.
type Manager struct {
	ID       string
	Name     string
	TeamName string
	IsAdmin  bool
}

func (m Manager) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("manager id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("manager name is required")
	}
	if m.TeamName == "" {
		return fmt.Errorf("manager team name is required")
	}

	return nil
}
