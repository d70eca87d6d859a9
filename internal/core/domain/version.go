package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// " v3" at the end of a title. The space class also takes \v and
	// Unicode spaces such as NBSP, which RE2's \s leaves out.
	versionSuffix = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+v\d+$`)

	// "v3" at the end of a title, with or without leading space
	trailingVersion = regexp.MustCompile(`v(\d+)$`)
)

// BaseTitle strips a trailing version suffix
// "Shot A v3" -> "Shot A", "Shot A" -> "Shot A"
func BaseTitle(title string) string {
	return versionSuffix.ReplaceAllString(title, "")
}

// TitleVersion extracts the trailing version number of a title.
// Returns 0 when the title has no version.
func TitleVersion(title string) int {
	m := trailingVersion.FindStringSubmatch(title)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// InVersionFamily reports whether title belongs to the version sequence of
// baseTitle. Matching is by plain prefix, so "Shot A vista" joins the
// "Shot A" family.
func InVersionFamily(title, baseTitle string) bool {
	return title == baseTitle || strings.HasPrefix(title, baseTitle+" v")
}

// NextVersion returns the version number a new duplicate of baseTitle gets,
// given every title currently in the archive
func NextVersion(baseTitle string, titles []string) int {
	highest := 0
	for _, title := range titles {
		if !InVersionFamily(title, baseTitle) {
			continue
		}
		if v := TitleVersion(title); v > highest {
			highest = v
		}
	}
	return highest + 1
}

// VersionedTitle formats "<base> v<n>"
func VersionedTitle(baseTitle string, n int) string {
	return fmt.Sprintf("%s v%d", baseTitle, n)
}
