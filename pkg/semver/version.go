// Package semver classifies crate version changes and carries the
// required/actual SemVer bump vocabulary a lint's finding is judged
// against.
package semver

import (
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// Bump is the SemVer significance of a change, ordered so that
// NotChanged < Patch < Minor < Major and int comparison tells you which
// of two bumps is larger.
type Bump int

const (
	NotChanged Bump = iota
	Patch
	Minor
	Major
)

func (b Bump) String() string {
	switch b {
	case NotChanged:
		return "not-changed"
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "unknown"
	}
}

// RequiredUpdate is the minimum bump a lint's detected change demands; its
// vocabulary excludes NotChanged (spec.md §4.4: "Patch | Minor | Major").
type RequiredUpdate = Bump

// ParseRequiredUpdate parses a lint record's required_update field.
func ParseRequiredUpdate(s string) (RequiredUpdate, bool) {
	switch strings.ToLower(s) {
	case "patch":
		return Patch, true
	case "minor":
		return Minor, true
	case "major":
		return Major, true
	default:
		return Patch, false
	}
}

// Satisfied reports whether actual meets or exceeds required — i.e. the
// crate's real version bump was large enough to cover this change.
func Satisfied(required RequiredUpdate, actual Bump) bool {
	return actual >= required
}

func normalize(v string) string {
	if v == "" || v[0] == 'v' {
		return v
	}
	return "v" + v
}

// parseTriple extracts the numeric major.minor.patch triple, ignoring any
// prerelease or build metadata suffix.
func parseTriple(v string) (major, minor, patch int, ok bool) {
	v = strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		v = v[:i]
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return 0, 0, 0, false
	}
	var err error
	if major, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, 0, false
	}
	if minor, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, 0, false
	}
	if patch, err = strconv.Atoi(parts[2]); err != nil {
		return 0, 0, 0, false
	}
	return major, minor, patch, true
}

// ClassifyChange computes the actual SemVer bump between a baseline and a
// current crate version, mirroring cargo's left-most-non-zero-component
// convention for 0.y.z releases. Returns ok=false when either version is
// absent or unparsable, in which case the caller should assume no change
// rather than fail the run (original_source/src/check_release.rs's
// get_semver_version_change does the same: "Could not determine whether
// crate version changed. Assuming no change.").
func ClassifyChange(baselineVersion, currentVersion *string) (Bump, bool) {
	if baselineVersion == nil || currentVersion == nil {
		return NotChanged, false
	}
	b, c := normalize(*baselineVersion), normalize(*currentVersion)
	if !semver.IsValid(b) || !semver.IsValid(c) {
		return NotChanged, false
	}

	bMaj, bMin, bPat, ok1 := parseTriple(b)
	cMaj, cMin, cPat, ok2 := parseTriple(c)
	if !ok1 || !ok2 {
		return NotChanged, false
	}

	switch {
	case bMaj != cMaj:
		return Major, true
	case bMin != cMin:
		if cMaj == 0 {
			return Major, true
		}
		return Minor, true
	case bPat != cPat:
		if cMaj == 0 {
			if cMin == 0 {
				return Major, true
			}
			return Minor, true
		}
		return Patch, true
	default:
		return NotChanged, true
	}
}
