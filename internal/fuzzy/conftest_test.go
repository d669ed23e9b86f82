package fuzzy

// testRecord is a minimal Searchable used across the package tests.
type testRecord struct {
	id     string
	fields Fields
}

func (r testRecord) SearchFields() Fields { return r.fields }

func rec(id, name string, tags ...string) testRecord {
	return testRecord{id: id, fields: Fields{Name: name, Tags: tags}}
}

func ptr(s string) *string { return &s }

func ids(recs []testRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.id
	}
	return out
}

func sameIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const eps = 1e-9

func approx(a, b float64) bool {
	d := a - b
	return d < eps && d > -eps
}
