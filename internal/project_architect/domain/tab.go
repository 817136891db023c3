package domain

// Tab is one of the three views of the workspace.
type Tab string

const (
	TabArchitect Tab = "architect"
	TabDetails   Tab = "details"
	TabReport    Tab = "report"
)

// ParseTab validates a tab name coming from a request.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabArchitect, TabDetails, TabReport:
		return Tab(s), nil
	}
	return "", ErrInvalidTab
}
