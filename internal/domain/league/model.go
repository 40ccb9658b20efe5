package league

import "fmt"

// League is a competition the tracked club takes part in, e.g. "Campionato DR3".
type League struct {
	ID     string
	Name   string
	Season string
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season == "" {
		return fmt.Errorf("league season is required")
	}

	return nil
}
