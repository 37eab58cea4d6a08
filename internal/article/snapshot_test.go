package article

import (
	"testing"
)

func TestParseSnapshotWellFormed(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{
		"step1": {
			"title": "SEO Tips",
			"metaDescription": "All the tips.",
			"urlSlug": "seo-tips",
			"primaryKeyword": "seo tips",
			"secondaryKeywords": ["on-page seo", "rankings"]
		},
		"step2": {
			"internalLinks": ["/other-post"],
			"externalLinks": ["https://example.org/study"]
		},
		"tableOfContents": ["Intro", "Tips", "Summary"],
		"images": [{"url": "https://cdn.example.com/hero.png", "alt": "hero"}],
		"content": "# SEO Tips\n\nBody text."
	}`))
	if err != nil {
		t.Fatalf("ParseSnapshot() error = %v", err)
	}

	if snap.Step1.Title != "SEO Tips" {
		t.Errorf("Title = %q", snap.Step1.Title)
	}
	if len(snap.Step1.SecondaryKeywords) != 2 {
		t.Errorf("SecondaryKeywords = %v", snap.Step1.SecondaryKeywords)
	}
	if len(snap.TableOfContents) != 3 {
		t.Errorf("TableOfContents = %v", snap.TableOfContents)
	}
	if len(snap.Images) != 1 || snap.Images[0].URL != "https://cdn.example.com/hero.png" {
		t.Errorf("Images = %v", snap.Images)
	}
	if len(snap.Step2.InternalLinks) != 1 || len(snap.Step2.ExternalLinks) != 1 {
		t.Errorf("links = %v / %v", snap.Step2.InternalLinks, snap.Step2.ExternalLinks)
	}
}

func TestParseSnapshotLenientListFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantTOC []string
	}{
		{
			"array of strings",
			`{"tableOfContents": ["A", "B"]}`,
			[]string{"A", "B"},
		},
		{
			"stringified array",
			`{"tableOfContents": "[\"A\", \"B\"]"}`,
			[]string{"A", "B"},
		},
		{
			"malformed string degrades to empty",
			`{"tableOfContents": "{not valid json"}`,
			nil,
		},
		{
			"wrong type degrades to empty",
			`{"tableOfContents": 42}`,
			nil,
		},
		{
			"empty string",
			`{"tableOfContents": ""}`,
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParseSnapshot([]byte(tt.payload))
			if err != nil {
				t.Fatalf("ParseSnapshot() error = %v", err)
			}
			if len(snap.TableOfContents) != len(tt.wantTOC) {
				t.Fatalf("TableOfContents = %v, want %v", snap.TableOfContents, tt.wantTOC)
			}
			for i := range tt.wantTOC {
				if snap.TableOfContents[i] != tt.wantTOC[i] {
					t.Errorf("entry %d = %q, want %q", i, snap.TableOfContents[i], tt.wantTOC[i])
				}
			}
		})
	}
}

func TestParseSnapshotLenientImages(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int
	}{
		{"object array", `{"images": [{"url": "a.png"}, {"url": "b.png"}]}`, 2},
		{"url string array", `{"images": ["a.png", "b.png"]}`, 2},
		{"stringified object array", `{"images": "[{\"url\": \"a.png\"}]"}`, 1},
		{"malformed degrades to empty", `{"images": "oops"}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap, err := ParseSnapshot([]byte(tt.payload))
			if err != nil {
				t.Fatalf("ParseSnapshot() error = %v", err)
			}
			if len(snap.Images) != tt.want {
				t.Errorf("Images = %v, want %d entries", snap.Images, tt.want)
			}
		})
	}
}

func TestParseSnapshotInvalidOuterDocument(t *testing.T) {
	if _, err := ParseSnapshot([]byte(`{not json`)); err == nil {
		t.Error("ParseSnapshot() on invalid document: want error, got nil")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	snap := &Snapshot{}
	snap.Step1.Title = "SEO Tips"
	snap.Step1.SecondaryKeywords = StringList{"a", "b"}
	snap.Content = "Body."

	data, err := snap.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	back, err := ParseSnapshot(data)
	if err != nil {
		t.Fatalf("ParseSnapshot() error = %v", err)
	}
	if back.Step1.Title != snap.Step1.Title || back.Content != snap.Content {
		t.Errorf("round trip changed the snapshot: %+v", back)
	}
	if len(back.Step1.SecondaryKeywords) != 2 {
		t.Errorf("SecondaryKeywords = %v", back.Step1.SecondaryKeywords)
	}
}

func TestFieldStringAndSetField(t *testing.T) {
	snap := &Snapshot{}
	snap.Step1.Title = "Old Title"
	snap.TableOfContents = StringList{"A", "B"}

	if got := snap.FieldString("title"); got != "Old Title" {
		t.Errorf("FieldString(title) = %q", got)
	}
	if got := snap.FieldString("tableOfContents"); got != "A, B" {
		t.Errorf("FieldString(tableOfContents) = %q", got)
	}
	if got := snap.FieldString("unknown"); got != "" {
		t.Errorf("FieldString(unknown) = %q, want empty", got)
	}

	if !snap.SetField("title", "New Title") {
		t.Fatal("SetField(title) = false, want true")
	}
	if snap.Step1.Title != "New Title" {
		t.Errorf("Title after SetField = %q", snap.Step1.Title)
	}

	// List fields are not writable as strings.
	if snap.SetField("tableOfContents", "C") {
		t.Error("SetField(tableOfContents) = true, want false")
	}
}
