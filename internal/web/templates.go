package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/justestif/go-moodtune/internal/db"
	"github.com/justestif/go-moodtune/internal/mood"
)

// Templates manages HTML template rendering.
type Templates struct {
	templates map[string]*template.Template
	partials  map[string]*template.Template
	funcs     template.FuncMap
}

// NewTemplates creates a new template manager by loading templates from the given filesystem.
func NewTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{
		templates: make(map[string]*template.Template),
		partials:  make(map[string]*template.Template),
		funcs:     defaultFuncs(),
	}

	if err := t.load(templatesFS); err != nil {
		return nil, err
	}

	return t, nil
}

// Render renders a page template with the given data.
func (t *Templates) Render(w io.Writer, page string, data any) error {
	tmpl, ok := t.templates[page]
	if !ok {
		return fmt.Errorf("template %q not found", page)
	}

	// Execute the "base" template which includes the page content
	return tmpl.ExecuteTemplate(w, "base", data)
}

// RenderPartial renders a partial template (without base layout) with the given data.
// Each partial file defines a template named after the file.
func (t *Templates) RenderPartial(w io.Writer, partial string, data any) error {
	tmpl, ok := t.partials[partial]
	if !ok {
		return fmt.Errorf("partial %q not found", partial)
	}
	return tmpl.ExecuteTemplate(w, partial, data)
}

// load parses all templates from the filesystem.
func (t *Templates) load(templatesFS fs.FS) error {
	// Load base layout
	layoutPattern := "layouts/*.html"
	layouts, err := fs.Glob(templatesFS, layoutPattern)
	if err != nil {
		return fmt.Errorf("finding layouts: %w", err)
	}

	// Load partials
	partialPattern := "partials/*.html"
	partials, err := fs.Glob(templatesFS, partialPattern)
	if err != nil {
		return fmt.Errorf("finding partials: %w", err)
	}

	// Load each page template with layouts and partials
	pagePattern := "pages/*.html"
	pages, err := fs.Glob(templatesFS, pagePattern)
	if err != nil {
		return fmt.Errorf("finding pages: %w", err)
	}

	// Common files to include with every page
	commonFiles := append(layouts, partials...)

	for _, page := range pages {
		// Create a new template for each page
		name := filepath.Base(page)
		name = name[:len(name)-len(".html")] // Remove .html extension

		files := append([]string{page}, commonFiles...)

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, files...)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}

		t.templates[name] = tmpl
	}

	// Partials also render standalone as HTMX fragments
	for _, partial := range partials {
		name := filepath.Base(partial)
		name = name[:len(name)-len(".html")] // Remove .html extension

		tmpl, err := template.New(name).Funcs(t.funcs).ParseFS(templatesFS, partial)
		if err != nil {
			return fmt.Errorf("parsing partial %s: %w", name, err)
		}
		t.partials[name] = tmpl
	}

	return nil
}

// defaultFuncs returns the default template functions.
func defaultFuncs() template.FuncMap {
	return template.FuncMap{
		// moodColor returns the hex color of a happiness/calmness pair.
		"moodColor": func(happiness, calmness int) string {
			return mood.ColorOf(happiness, calmness).Hex
		},

		// moodGradient is pre-escaped: the CSS sanitizer rejects parentheses.
		"moodGradient": func(happiness, calmness int) template.CSS {
			return template.CSS(mood.GradientOf(happiness, calmness)) //nolint:gosec // built from validated ints
		},

		// formatDate formats a time as "Jan 2, 2006"
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},

		// deref returns the value of an optional string, or "".
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},

		// add adds two integers (for 1-based indexing in loops)
		"add": func(a, b int) int {
			return a + b
		},
	}
}

// PageData contains common data passed to all page templates.
type PageData struct {
	Title       string
	User        *UserData
	CurrentPath string
}

// UserData contains authenticated listener information.
type UserData struct {
	ID   string
	Name string
}

// PresetData is a quick-mood button.
type PresetData struct {
	Name  string
	Input mood.Input
	Color string
}

// HomePageData contains data for the home page template.
type HomePageData struct {
	PageData
	Preview        mood.Summary
	Presets        []PresetData
	Wall           []db.MoodEntry
	SpotifyEnabled bool
	Authenticated  bool
}

func presetData() []PresetData {
	names := mood.PresetNames()
	out := make([]PresetData, len(names))
	for i, name := range names {
		in, _ := mood.PresetFor(name)
		out[i] = PresetData{
			Name:  name,
			Input: in,
			Color: mood.ColorOf(in.Happiness, in.Calmness).Hex,
		}
	}
	return out
}
