package article

import (
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New()

// Structure is what the markdown body itself reveals about an article:
// its headings, links, and images.
type Structure struct {
	Headings      []string
	InternalLinks []string
	ExternalLinks []string
	Images        []string
}

// DeriveStructure walks the markdown AST of content and collects headings,
// links, and images. Links are classified as internal when they are
// relative or share a host with baseURL.
func DeriveStructure(content, baseURL string) Structure {
	var st Structure
	if strings.TrimSpace(content) == "" {
		return st
	}

	baseHost := ""
	if u, err := url.Parse(baseURL); err == nil {
		baseHost = strings.ToLower(u.Host)
	}

	source := []byte(content)
	doc := md.Parser().Parse(text.NewReader(source))

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			heading := strings.TrimSpace(string(node.Text(source)))
			if heading != "" {
				st.Headings = append(st.Headings, heading)
			}
		case *ast.Link:
			dest := string(node.Destination)
			if dest == "" {
				break
			}
			if isInternalLink(dest, baseHost) {
				st.InternalLinks = append(st.InternalLinks, dest)
			} else {
				st.ExternalLinks = append(st.ExternalLinks, dest)
			}
		case *ast.Image:
			if dest := string(node.Destination); dest != "" {
				st.Images = append(st.Images, dest)
			}
		}
		return ast.WalkContinue, nil
	})

	return st
}

// Normalize fills structural fields that the editing flow left empty by
// deriving them from the markdown content. Explicitly set fields win.
func (s *Snapshot) Normalize(baseURL string) {
	st := DeriveStructure(s.Content, baseURL)

	if len(s.TableOfContents) == 0 {
		s.TableOfContents = st.Headings
	}
	if len(s.Sections) == 0 {
		for _, h := range st.Headings {
			s.Sections = append(s.Sections, Section{Heading: h})
		}
	}
	if len(s.Step2.InternalLinks) == 0 {
		s.Step2.InternalLinks = st.InternalLinks
	}
	if len(s.Step2.ExternalLinks) == 0 {
		s.Step2.ExternalLinks = st.ExternalLinks
	}
	if len(s.Images) == 0 {
		for _, u := range st.Images {
			s.Images = append(s.Images, Image{URL: u})
		}
	}
}

func isInternalLink(dest, baseHost string) bool {
	if strings.HasPrefix(dest, "#") {
		return true
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	if u.Host == "" {
		return true
	}
	return baseHost != "" && strings.ToLower(u.Host) == baseHost
}
