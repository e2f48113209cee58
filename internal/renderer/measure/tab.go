package measure

// DefaultTabWidth is the tab width used when none is configured.
const DefaultTabWidth = 4

// tabStop returns the column a tab starting at col advances to.
func tabStop(col, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}
	return col + tabWidth - col%tabWidth
}
