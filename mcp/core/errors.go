package core

import "fmt"

// ErrUnknownTool is returned by CallTool for names absent from the tool
// table.
type ErrUnknownTool struct {
	Name string
}

func (e ErrUnknownTool) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}
