package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jonesrussell/keyraces/internal/logger"
)

const (
	fileTimeLayout = "20060102-150405"
	dirPerm        = 0o755
	filePerm       = 0o644
)

// SiteWriter persists rendered reports under an output directory and
// maintains an index page listing every report found there.
type SiteWriter struct {
	dir       string
	writeText bool
	writeHTML bool
	writeJSON bool
	log       logger.Interface
}

// NewSiteWriter creates a writer for the given directory. Formats are
// opt-out so a run can produce any subset.
func NewSiteWriter(dir string, writeText, writeHTML, writeJSON bool, log logger.Interface) *SiteWriter {
	return &SiteWriter{
		dir:       dir,
		writeText: writeText,
		writeHTML: writeHTML,
		writeJSON: writeJSON,
		log:       log.WithComponent("site"),
	}
}

// Write renders the report in each enabled format, writes the files,
// and refreshes index.html and style.css. Returns the written paths.
func (w *SiteWriter) Write(r *Report) ([]string, error) {
	if err := os.MkdirAll(w.dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	stem := "report-" + r.GeneratedAt.Format(fileTimeLayout)
	var written []string

	if w.writeText {
		path := filepath.Join(w.dir, stem+".txt")
		if err := os.WriteFile(path, []byte(RenderText(r)), filePerm); err != nil {
			return written, fmt.Errorf("write text report: %w", err)
		}
		written = append(written, path)
	}

	if w.writeHTML {
		html, err := RenderHTML(r)
		if err != nil {
			return written, err
		}
		path := filepath.Join(w.dir, stem+".html")
		if err := os.WriteFile(path, []byte(html), filePerm); err != nil {
			return written, fmt.Errorf("write html report: %w", err)
		}
		written = append(written, path)

		if err := w.refreshIndex(); err != nil {
			return written, err
		}
	}

	if w.writeJSON {
		data, err := RenderJSON(r)
		if err != nil {
			return written, err
		}
		path := filepath.Join(w.dir, stem+".json")
		if err := os.WriteFile(path, data, filePerm); err != nil {
			return written, fmt.Errorf("write json report: %w", err)
		}
		written = append(written, path)
	}

	for _, path := range written {
		w.log.Info("report written", "path", path)
	}

	return written, nil
}

// refreshIndex rewrites index.html to list every report page in the
// directory, newest first, and drops style.css alongside it.
func (w *SiteWriter) refreshIndex() error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("list output dir: %w", err)
	}

	var pages []string
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "report-") && strings.HasSuffix(name, ".html") {
			pages = append(pages, name)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(pages)))

	var b strings.Builder
	if err := indexTemplate.Execute(&b, pages); err != nil {
		return fmt.Errorf("render index: %w", err)
	}

	indexPath := filepath.Join(w.dir, "index.html")
	if err := os.WriteFile(indexPath, []byte(b.String()), filePerm); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	cssPath := filepath.Join(w.dir, "style.css")
	if err := os.WriteFile(cssPath, []byte(siteCSS), filePerm); err != nil {
		return fmt.Errorf("write stylesheet: %w", err)
	}

	return nil
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Key Races Reports</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<h1>Key Races Reports</h1>
<ul class="reports">
{{range .}}<li><a href="{{.}}">{{.}}</a></li>
{{end}}</ul>
</body>
</html>
`))

const siteCSS = `body {
  font-family: Georgia, serif;
  max-width: 56rem;
  margin: 2rem auto;
  padding: 0 1rem;
  color: #1a1a1a;
}
header .meta { color: #666; }
section.race {
  border-top: 1px solid #ddd;
  padding: 1rem 0;
}
.key { font-family: monospace; font-size: 0.8em; color: #666; }
.badge {
  font-size: 0.7em;
  text-transform: uppercase;
  background: #eee;
  border-radius: 3px;
  padding: 0.1em 0.4em;
}
.confidence-curated .badge, .confidence-merged .badge { background: #dce9d5; }
.impact { font-style: italic; }
.candidates-unknown, .candidates-none { color: #666; }
table.dates th { text-align: left; padding-right: 1em; font-weight: normal; color: #666; }
.research { background: #fff6df; padding: 0.5em; }
.warnings { border-top: 2px solid #c99; }
.warnings code { background: #f3e0e0; padding: 0 0.3em; }
`
