package reconcile

import "strings"

// CleanValue trims a cell, collapses interior space runs and converts dots
// to decimal commas. Every reconciled field passes through here before
// comparison.
func CleanValue(s string) string {
	s = strings.TrimSpace(s)
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return strings.ReplaceAll(s, ".", ",")
}

// NormalizeCoordinate puts a sexagesimal coordinate into comparable form.
// Surveyors write the same position as -47°52'05,70" in one document and
// 47°52'05,70" W in the other: unicode prime marks become ASCII quotes, one
// leading minus sign drops, a trailing hemisphere letter drops, and wrapping
// quote characters go. Only W and S suffixes occur here; parcels sit in the
// southwest quadrant.
func NormalizeCoordinate(coord string) string {
	if coord == "" {
		return ""
	}

	coord = strings.TrimSpace(coord)
	coord = strings.ReplaceAll(coord, "′", "'")
	coord = strings.ReplaceAll(coord, "″", `"`)

	if strings.HasPrefix(coord, "-") {
		coord = strings.TrimSpace(coord[1:])
	}

	coord = strings.TrimSuffix(coord, " W")
	coord = strings.TrimSuffix(coord, " S")
	coord = strings.TrimSpace(coord)
	coord = strings.Trim(coord, `"`)
	coord = strings.Trim(coord, "'")
	return strings.TrimSpace(coord)
}
