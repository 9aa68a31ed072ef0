package ranking

// TruncateLabel shortens display names longer than width runes to width-3 runes plus "...".
func TruncateLabel(name string, width int) string {
	runes := []rune(name)
	if width < 4 || len(runes) <= width {
		return name
	}
	return string(runes[:width-3]) + "..."
}
