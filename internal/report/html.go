package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/jonesrussell/keyraces/internal/domain"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"dateText":  dateText,
	"raceTitle": raceTitle,
}).Parse(reportHTML))

// raceView pairs a record with its date labels in display order, since
// templates cannot iterate a map deterministically.
type raceView struct {
	domain.RaceRecord
	Unknown  bool
	DateRows []dateRow
}

type dateRow struct {
	Label string
	Value domain.DateValue
}

type reportView struct {
	*Report
	RaceViews []raceView
}

// RenderHTML renders the report as a standalone HTML page.
func RenderHTML(r *Report) (string, error) {
	view := reportView{Report: r, RaceViews: make([]raceView, 0, len(r.Races))}
	for _, race := range r.Races {
		rv := raceView{RaceRecord: race, Unknown: race.CandidatesUnknown()}
		for _, label := range race.SortedDateLabels() {
			rv.DateRows = append(rv.DateRows, dateRow{Label: label, Value: race.KeyDates[label]})
		}
		view.RaceViews = append(view.RaceViews, rv)
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, view); err != nil {
		return "", fmt.Errorf("render html report: %w", err)
	}
	return b.String(), nil
}

func raceTitle(race domain.RaceRecord) string {
	if race.Title != "" {
		return race.Title
	}
	return fmt.Sprintf("%s %s %d", domain.StateName(race.Key.State), domain.OfficeName(race.Key.Office), race.Key.Year)
}

const reportHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Key Races Report</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<header>
  <h1>Key Races Report</h1>
  <p class="meta">Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}} &middot; run {{.RunID}} &middot; provider {{.Provider}}</p>
</header>

{{range .RaceViews}}
<section class="race confidence-{{.Confidence}}">
  <h2>{{raceTitle .RaceRecord}} <span class="key">{{.Key.String}}</span> <span class="badge">{{.Confidence}}</span></h2>
  {{if .ImpactNote}}<p class="impact">{{.ImpactNote}}</p>{{end}}

  {{if .CandidatesNone}}
  <p class="candidates-none">No candidates: no election confirmed.</p>
  {{else if .Unknown}}
  <p class="candidates-unknown">Candidates unknown.</p>
  {{else}}
  <ul class="candidates">
    {{range .Candidates}}
    <li>{{.Name}}{{if .Party}} ({{.Party}}){{end}}{{if .Incumbent}} <em>incumbent</em>{{end}}{{if .Website}} &middot; <a href="{{.Website}}">site</a>{{end}}</li>
    {{end}}
  </ul>
  {{end}}

  {{if .DateRows}}
  <table class="dates">
    {{range .DateRows}}<tr><th>{{.Label}}</th><td>{{dateText .Value}}</td></tr>
    {{end}}
  </table>
  {{end}}

  {{if .ContactLinks}}
  <p class="links">{{range .ContactLinks}}<a href="{{.URL}}">{{.Label}}</a> {{end}}</p>
  {{end}}

  {{if .FallbackLinks}}
  <p class="research">Research needed: {{range .FallbackLinks}}<a href="{{.URL}}">{{.Label}}</a> {{end}}</p>
  {{end}}
</section>
{{end}}

{{if .Warnings}}
<section class="warnings">
  <h2>Warnings ({{len .Warnings}})</h2>
  <ul>
    {{range .Warnings}}<li><code>{{.Kind}}</code> {{.Entry}}: {{.Reason}}</li>
    {{end}}
  </ul>
</section>
{{end}}
</body>
</html>
`
