package resolver

// DoctorDirectory resolves an already-normalized doctor reference to a
// canonical id, either directly or through an alias table.
type DoctorDirectory interface {
	ResolveDoctor(ref string) (string, bool)
}

// NormalizeDoctor canonicalizes a spoken doctor reference. It tries the
// folded text as-is first (so alias entries like "dr gomez" match), then
// with the honorific stripped.
func NormalizeDoctor(dir DoctorDirectory, text string) (string, bool) {
	folded := Fold(text)
	if folded == "" {
		return "", false
	}
	if id, ok := dir.ResolveDoctor(folded); ok {
		return id, true
	}
	stripped := NormalizeName(text)
	if stripped == "" || stripped == folded {
		return "", false
	}
	return dir.ResolveDoctor(stripped)
}
