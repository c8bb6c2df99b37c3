package canvas

// Ellipsis marks shortened labels.
const Ellipsis = "..."

// FontSize returns the logical label size for a device pixel ratio. Dense
// displays get a smaller size since they otherwise render text too large.
func FontSize(pixelRatio float64) float64 {
	switch {
	case pixelRatio >= 2:
		return 6.5
	case pixelRatio > 1.5:
		return 9
	case pixelRatio > 1:
		return 10.5
	}
	return 12
}

// Ellipsize shortens text with a trailing ellipsis so that it fits maxWidth.
// The cut is found by binary search; when nothing fits the bare ellipsis is
// returned.
func Ellipsize(c Canvas, text string, maxWidth float64) string {
	if maxWidth <= 0 || c.MeasureText(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	ret := ""
	left, right := 0, len(runes)
	for left <= right {
		mid := (left + right) / 2
		candidate := string(runes[:mid]) + Ellipsis
		if c.MeasureText(candidate) <= maxWidth {
			ret = candidate
			left = mid + 1
		} else {
			right = mid - 1
		}
	}
	if ret == "" {
		return Ellipsis
	}
	return ret
}
