package article

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
)

// Snapshot is a read-only view of an article draft as the editing flow
// produces it. The scoring engine only ever reads it; writes go through
// SetField when a suggestion is applied.
type Snapshot struct {
	Step1           Step1      `json:"step1"`
	Step2           Step2      `json:"step2"`
	TableOfContents StringList `json:"tableOfContents"`
	Images          ImageList  `json:"images"`
	FAQItems        []FAQItem  `json:"faqItems"`
	Sections        []Section  `json:"sections"`
	Content         string     `json:"content"`
}

// Step1 holds the metadata fields from the first editing step.
type Step1 struct {
	Title              string     `json:"title"`
	MetaDescription    string     `json:"metaDescription"`
	URLSlug            string     `json:"urlSlug"`
	PrimaryKeyword     string     `json:"primaryKeyword"`
	SecondaryKeywords  StringList `json:"secondaryKeywords"`
	Language           string     `json:"language"`
	TargetCountry      string     `json:"targetCountry"`
	ContentDescription string     `json:"contentDescription"`
}

// Step2 holds the link fields from the second editing step.
type Step2 struct {
	InternalLinks StringList `json:"internalLinks"`
	ExternalLinks StringList `json:"externalLinks"`
}

// Image is a generated or uploaded article image.
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// FAQItem is a question/answer pair attached to the article.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Section is a content section with its heading.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
}

// StringList decodes from either a JSON array of strings or a string that
// itself contains a serialized JSON array. The editing flow historically
// stored list fields both ways. Malformed payloads degrade to an empty list.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var direct []string
	if err := json.Unmarshal(data, &direct); err == nil {
		*l = direct
		return nil
	}

	var nested string
	if err := json.Unmarshal(data, &nested); err == nil {
		nested = strings.TrimSpace(nested)
		if nested == "" {
			*l = nil
			return nil
		}
		var inner []string
		if err := json.Unmarshal([]byte(nested), &inner); err != nil {
			log.Printf("Ignoring malformed list field: %v", err)
			*l = nil
			return nil
		}
		*l = inner
		return nil
	}

	log.Printf("Ignoring list field with unexpected shape: %s", truncateForLog(data))
	*l = nil
	return nil
}

// ImageList decodes from a JSON array of image objects, an array of plain
// URL strings, or a string containing either. Malformed payloads degrade
// to an empty list.
type ImageList []Image

func (l *ImageList) UnmarshalJSON(data []byte) error {
	raw := data
	var nested string
	if err := json.Unmarshal(data, &nested); err == nil {
		nested = strings.TrimSpace(nested)
		if nested == "" {
			*l = nil
			return nil
		}
		raw = []byte(nested)
	}

	var objects []Image
	if err := json.Unmarshal(raw, &objects); err == nil {
		*l = objects
		return nil
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err == nil {
		images := make([]Image, 0, len(urls))
		for _, u := range urls {
			if u != "" {
				images = append(images, Image{URL: u})
			}
		}
		*l = images
		return nil
	}

	log.Printf("Ignoring malformed image list: %s", truncateForLog(raw))
	*l = nil
	return nil
}

// ParseSnapshot parses a snapshot from JSON. The outer document must be
// valid JSON; individual list fields degrade leniently (see StringList).
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}
	return &snap, nil
}

// Encode serializes the snapshot for storage.
func (s *Snapshot) Encode() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return data, nil
}

// FieldString returns the value of a named snapshot field as a string.
// List fields are joined with ", ". Unknown fields return "".
func (s *Snapshot) FieldString(key string) string {
	switch key {
	case "title":
		return s.Step1.Title
	case "metaDescription":
		return s.Step1.MetaDescription
	case "urlSlug":
		return s.Step1.URLSlug
	case "primaryKeyword":
		return s.Step1.PrimaryKeyword
	case "secondaryKeywords":
		return strings.Join(s.Step1.SecondaryKeywords, ", ")
	case "contentDescription":
		return s.Step1.ContentDescription
	case "content":
		return s.Content
	case "tableOfContents":
		return strings.Join(s.TableOfContents, ", ")
	case "internalLinks":
		return strings.Join(s.Step2.InternalLinks, ", ")
	case "externalLinks":
		return strings.Join(s.Step2.ExternalLinks, ", ")
	}
	return ""
}

// SetField writes a string-valued field back into the snapshot. Returns
// false for fields that are not writable single strings.
func (s *Snapshot) SetField(key, value string) bool {
	switch key {
	case "title":
		s.Step1.Title = value
	case "metaDescription":
		s.Step1.MetaDescription = value
	case "urlSlug":
		s.Step1.URLSlug = value
	case "primaryKeyword":
		s.Step1.PrimaryKeyword = value
	case "contentDescription":
		s.Step1.ContentDescription = value
	case "content":
		s.Content = value
	default:
		return false
	}
	return true
}

func truncateForLog(data []byte) string {
	s := string(data)
	if len(s) > 80 {
		s = s[:80] + "..."
	}
	return s
}
