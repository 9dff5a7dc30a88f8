package bubbletea

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// BlockFocus exports blockFocus for testing.
func BlockFocus(m Model) int {
	return m.blockFocus
}
