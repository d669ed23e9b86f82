package fuzzy

import "testing"

func catalog() []testRecord {
	return []testRecord{
		rec("jasper", "Jasper AI", "writing"),
		rec("copy", "Copy.ai", "writing", "marketing"),
		rec("mid", "Midjourney", "image"),
	}
}

func TestScore_ExactNameMatch(t *testing.T) {
	got := Score(Fields{Name: "Jasper"}, "jasper")
	if !approx(got, 5) {
		t.Errorf("Score = %f, want 5", got)
	}
}

func TestScore_EmptyRecord(t *testing.T) {
	if got := Score(Fields{}, "jasper"); got != 0 {
		t.Errorf("Score = %f, want 0", got)
	}
}

func TestScore_TaglineOptional(t *testing.T) {
	without := Score(Fields{Name: "Tool"}, "writer")
	with := Score(Fields{Name: "Tool", Tagline: ptr("Writer")}, "writer")

	if without != 0 {
		t.Errorf("score without tagline = %f, want 0", without)
	}
	if !approx(with, 3) {
		t.Errorf("score with exact tagline = %f, want 3", with)
	}
}

func TestScore_DescriptionScaled(t *testing.T) {
	got := Score(Fields{Description: "Canva"}, "canva")
	if !approx(got, 0.8*2) {
		t.Errorf("Score = %f, want %f", got, 0.8*2)
	}
}

func TestScore_CollectionFraction(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   float64
	}{
		{"one of two tags", Fields{Tags: []string{"writing", "marketing"}}, 0.5 * 0.8 * 1},
		{"all tags", Fields{Tags: []string{"writing"}}, 1 * 0.8 * 1},
		{"one of four features", Fields{Features: []string{"rewriting", "seo", "chat", "api"}}, 0.25 * 0.7 * 1.5},
		{"no tags", Fields{Tags: nil}, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.fields, "writ"); !approx(got, tc.want) {
				t.Errorf("Score = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestSearchAndRank_BlankQueryPassThrough(t *testing.T) {
	in := catalog()
	for _, q := range []string{"", "   ", "\t\n"} {
		out := SearchAndRank(in, q, DefaultMinScore)
		if !sameIDs(ids(out), ids(in)) {
			t.Errorf("query %q: got %v, want input order %v", q, ids(out), ids(in))
		}
		if len(out) > 0 && &out[0] != &in[0] {
			t.Errorf("query %q: expected the input slice itself", q)
		}
	}
}

func TestSearchAndRank_ExactNameFirst(t *testing.T) {
	out := SearchAndRank(catalog(), "jasper", DefaultMinScore)
	if len(out) == 0 || out[0].id != "jasper" {
		t.Fatalf("got %v, want jasper first", ids(out))
	}
	for _, r := range out[1:] {
		if Score(r.fields, "jasper") >= Score(out[0].fields, "jasper") {
			t.Errorf("%s ranked below jasper but scored at least as high", r.id)
		}
	}
}

func TestSearchAndRank_TagPrefix(t *testing.T) {
	out := SearchAndRank(catalog(), "writ", DefaultMinScore)
	want := []string{"jasper", "copy"}
	if !sameIDs(ids(out), want) {
		t.Errorf("got %v, want %v", ids(out), want)
	}
}

func TestSearchAndRank_MinScoreIsStrict(t *testing.T) {
	in := []testRecord{rec("a", "Jasper")}
	// exact name match scores exactly 5
	if out := SearchAndRank(in, "jasper", 5); len(out) != 0 {
		t.Errorf("score equal to minScore must be dropped, got %v", ids(out))
	}
	if out := SearchAndRank(in, "jasper", 4.99); len(out) != 1 {
		t.Errorf("score above minScore must be kept, got %v", ids(out))
	}
}

func TestSearchAndRank_Properties(t *testing.T) {
	in := append(catalog(),
		rec("notion", "Notion AI", "writing", "notes"),
		rec("grammarly", "Grammarly", "writing", "grammar"),
		testRecord{id: "gpt", fields: Fields{
			Name:        "ChatGPT",
			Tagline:     ptr("Conversational AI"),
			Description: "General purpose assistant for writing and code",
			Features:    []string{"chat", "code", "writing help"},
			Tags:        []string{"chatbot"},
		}},
	)

	for _, q := range []string{"writ", "ai", "jasper", "chat", "gram", "zzzz"} {
		out := SearchAndRank(in, q, DefaultMinScore)
		if len(out) > len(in) {
			t.Errorf("query %q: %d results from %d records", q, len(out), len(in))
		}
		prev := -1.0
		for i, r := range out {
			s := Score(r.fields, q)
			if s <= DefaultMinScore {
				t.Errorf("query %q: %s has score %f <= min", q, r.id, s)
			}
			if i > 0 && s > prev {
				t.Errorf("query %q: results not sorted descending at %d", q, i)
			}
			prev = s
		}
	}
}

func TestSearchAndRank_StableTies(t *testing.T) {
	in := []testRecord{
		rec("first", "Alpha", "seo"),
		rec("second", "Beta", "seo"),
		rec("third", "Gamma", "seo"),
	}
	out := SearchAndRank(in, "seo", DefaultMinScore)
	want := []string{"first", "second", "third"}
	if !sameIDs(ids(out), want) {
		t.Errorf("got %v, want %v", ids(out), want)
	}
}

func TestScore_MaxScore(t *testing.T) {
	if !approx(MaxScore, 11.45) {
		t.Fatalf("MaxScore = %f, want 11.45", MaxScore)
	}
	perfect := Fields{
		Name:        "seo",
		Tagline:     ptr("seo"),
		Description: "seo",
		Features:    []string{"seo"},
		Tags:        []string{"seo"},
	}
	if got := Score(perfect, "seo"); !approx(got, MaxScore) {
		t.Errorf("Score = %f, want MaxScore %f", got, MaxScore)
	}
}

func TestSearchAndRank_ZeroMinScoreKeepsAnyMatch(t *testing.T) {
	in := []testRecord{
		rec("copy", "Copy.ai", "writing", "marketing", "email", "ads", "seo", "social", "blog", "video", "sales"),
		rec("mid", "Midjourney", "image"),
	}
	// one of nine tags: 1/9 * 0.8 ≈ 0.089, under the default cut-off
	if out := SearchAndRank(in, "writing", DefaultMinScore); len(out) != 0 {
		t.Fatalf("default min score kept %v", ids(out))
	}
	if out := SearchAndRank(in, "writing", 0); len(out) != 1 || out[0].id != "copy" {
		t.Errorf("min score 0 = %v, want [copy]", ids(out))
	}
}
