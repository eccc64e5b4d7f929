package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the name of the upload page template.
const PageTemplate = "index.tmpl"

// Page is the data rendered by PageTemplate.
type Page struct {
	Title      string
	SubmitPath string
	Files      []string
	Error      string
	View       View
}

// NewPage builds the page data for a workspace snapshot.
func NewPage(title, submitPath string, s State) Page {
	names := s.FileNames()
	return Page{
		Title:      title,
		SubmitPath: submitPath,
		Files:      names,
		Error:      s.Error,
		View:       Render(s.Result, names...),
	}
}

// Templates parses the embedded HTML templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
}

// WriteText writes a plain-text rendition of v, used by the command line client.
func WriteText(w io.Writer, v View) error {
	var b strings.Builder
	if !v.Ready {
		b.WriteString("Process a claim to see results here\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%s\n", strings.ToUpper(v.Banner.Title))
	if v.Banner.Reason != "" {
		fmt.Fprintf(&b, "%s\n", v.Banner.Reason)
	}
	fmt.Fprintf(&b, "\nDocuments Submitted: %d\n", len(v.Summary))
	for _, s := range v.Summary {
		if s.PatientName != "" {
			fmt.Fprintf(&b, "  - %s (%s)\n", s.Label, s.PatientName)
		} else {
			fmt.Fprintf(&b, "  - %s\n", s.Label)
		}
	}

	if len(v.MissingDocuments) > 0 {
		b.WriteString("\nMissing Required Documents\n")
		for _, m := range v.MissingDocuments {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
	}
	if len(v.Discrepancies) > 0 {
		b.WriteString("\nData Discrepancies Detected\n")
		for _, d := range v.Discrepancies {
			fmt.Fprintf(&b, "  - %s\n", d)
		}
	}

	b.WriteString("\nExtracted Data\n")
	for _, c := range v.Cards {
		fmt.Fprintf(&b, "  [%s] %d%% confidence\n", strings.ToUpper(c.Label), c.Confidence)
		for _, f := range c.Fields {
			fmt.Fprintf(&b, "    %s: %s\n", f.Label, f.Value)
		}
		if c.EmptyMessage != "" {
			fmt.Fprintf(&b, "    %s\n", c.EmptyMessage)
		}
	}

	b.WriteString("\n")
	for _, l := range v.Log {
		fmt.Fprintf(&b, "%s\n", l)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
