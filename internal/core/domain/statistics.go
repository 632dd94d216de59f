package domain

// Summary holds aggregate annotation progress.
type Summary struct {
	Done int `json:"done"`
	Todo int `json:"todo"`
}

// Total returns the number of mentions known to the backend.
func (s Summary) Total() int {
	return s.Done + s.Todo
}

// Percent returns the share of mentions done, 0 when there are none.
func (s Summary) Percent() float64 {
	if s.Total() == 0 {
		return 0
	}
	return float64(s.Done) * 100 / float64(s.Total())
}
