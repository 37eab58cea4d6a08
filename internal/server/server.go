package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/seoscribe/seoscribe/internal/article"
	"github.com/seoscribe/seoscribe/internal/database"
	"github.com/seoscribe/seoscribe/internal/scorer"
	"github.com/seoscribe/seoscribe/internal/seo"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Server is the local HTTP server for browsing drafts and score reports.
type Server struct {
	db       *database.DB
	scorer   *scorer.Scorer
	registry *seo.Registry
	pages    map[string]*template.Template
	mux      *http.ServeMux
}

// New creates a new Server.
func New(db *database.DB, sc *scorer.Scorer, registry *seo.Registry) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"percent": func(score, max int) int {
			if max == 0 {
				return 0
			}
			return score * 100 / max
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "draft.html", "references.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, scorer: sc, registry: registry, pages: pages, mux: http.NewServeMux()}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Routes
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/draft/", s.handleDraft)
	s.mux.HandleFunc("/references", s.handleReferences)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	listings, err := s.db.GetDraftListings()
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", map[string]any{
		"Drafts": listings,
	})
}

// criterionRow is one line of the score report table.
type criterionRow struct {
	ID         int
	Category   string
	Status     string
	Score      int
	Weight     int
	Message    string
	Suggestion string
	CanApply   bool
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/draft/")
	parts := strings.SplitN(path, "/", 2)

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	if len(parts) == 2 && r.Method == http.MethodPost {
		s.handleDraftAction(w, r, id, parts[1])
		return
	}

	draft, err := s.db.GetDraft(id)
	if err != nil || draft == nil {
		http.NotFound(w, r)
		return
	}

	snap, err := article.ParseSnapshot([]byte(draft.Snapshot))
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	run, _ := s.db.GetLatestRun(id)
	var rows []criterionRow
	if run != nil {
		results, _ := s.db.GetRunResults(run.ID)
		rows = s.buildRows(results, snap)
	}

	s.render(w, "draft.html", map[string]any{
		"Draft":   draft,
		"Run":     run,
		"Rows":    rows,
		"Content": snap.Content,
	})
}

func (s *Server) buildRows(results []database.ScoreResult, snap *article.Snapshot) []criterionRow {
	var rows []criterionRow
	for _, res := range results {
		id := seo.CriterionID(res.CriterionID)
		crit, ok := s.registry.Criterion(id)
		if !ok {
			continue
		}

		row := criterionRow{
			ID:       res.CriterionID,
			Category: id.Category().Name(),
			Status:   res.Status,
			Score:    res.Score,
			Weight:   crit.Weight,
		}
		if res.Message != nil {
			row.Message = *res.Message
		}
		if res.Status != string(seo.StatusSuccess) && s.registry.CanImprove(id) {
			row.Suggestion = s.registry.Improve(id, snap)
			row.CanApply = row.Suggestion != "" && row.Suggestion != snap.FieldString(s.registry.ImprovedField(id))
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *Server) handleDraftAction(w http.ResponseWriter, r *http.Request, id int64, action string) {
	switch action {
	case "score":
		if _, err := s.scorer.ScoreDraft(id); err != nil {
			log.Printf("Error scoring draft %d: %v", id, err)
		}
	case "apply":
		s.applySuggestion(id, r.FormValue("criterion"))
	case "delete":
		if err := s.db.DeleteDraft(id); err != nil {
			log.Printf("Error deleting draft %d: %v", id, err)
		}
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/draft/%d", id), http.StatusFound)
}

func (s *Server) applySuggestion(draftID int64, criterionField string) {
	cid, err := strconv.Atoi(criterionField)
	if err != nil {
		return
	}
	id := seo.CriterionID(cid)

	draft, err := s.db.GetDraft(draftID)
	if err != nil || draft == nil {
		return
	}
	snap, err := article.ParseSnapshot([]byte(draft.Snapshot))
	if err != nil {
		return
	}

	field := s.registry.ImprovedField(id)
	suggestion := s.registry.Improve(id, snap)
	if field == "" || suggestion == "" || !snap.SetField(field, suggestion) {
		return
	}

	encoded, err := snap.Encode()
	if err != nil {
		return
	}
	slug := snap.Step1.URLSlug
	keyword := snap.Step1.PrimaryKeyword
	if err := s.db.UpdateDraftSnapshot(draftID, snap.Step1.Title, &slug, &keyword, string(encoded)); err != nil {
		log.Printf("Error applying suggestion to draft %d: %v", draftID, err)
		return
	}
	if _, err := s.scorer.ScoreDraft(draftID); err != nil {
		log.Printf("Error rescoring draft %d: %v", draftID, err)
	}
}

func (s *Server) handleReferences(w http.ResponseWriter, r *http.Request) {
	refs, _ := s.db.GetAllReferences()
	s.render(w, "references.html", map[string]any{
		"References": refs,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, sc *scorer.Scorer, registry *seo.Registry, port int) error {
	srv, err := New(db, sc, registry)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
