package handlers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"carbon-intensity/internal/charts"
	"carbon-intensity/internal/snapshot"

	"github.com/gin-gonic/gin"
)

const indexTemplateName = "index"

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>UK Carbon Intensity</title>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; color: #1a1a2e; max-width: 1100px; margin: 0 auto; padding: 1rem; }
h1 { font-size: 1.6rem; margin-bottom: .25rem; }
.caption { color: #6c757d; font-size: .85rem; margin-bottom: 1.25rem; }
.caption code, .warning code { background: #f1f3f5; padding: 0 .25rem; border-radius: 3px; }
.cards { display: grid; grid-template-columns: repeat(2, 1fr); gap: .75rem; margin-bottom: 1.5rem; }
.card { background: #f8f9fa; border: 1px solid #dee2e6; border-radius: 8px; padding: .75rem 1rem; }
.card .label { font-size: .8rem; color: #6c757d; }
.card .value { font-size: 2rem; font-weight: 700; }
.chart-box { border: 1px solid #dee2e6; border-radius: 8px; padding: .5rem; margin-bottom: 1.25rem; }
.chart-box svg { width: 100%; height: auto; }
.warning { background: #fff3cd; border: 1px solid #ffe69c; border-radius: 8px; padding: 1rem; }
.error { background: #f8d7da; border: 1px solid #f1aeb5; border-radius: 8px; padding: 1rem; }
</style>
</head>
<body>
<h1>UK Carbon Intensity &ndash; Mini Dashboard</h1>
{{if .Warning}}
<div class="warning">{{.Warning}}<br><br><code>{{.Hint}}</code></div>
{{else if .Error}}
<div class="error">{{.Error}}</div>
{{else}}
<p class="caption">Using: <code>{{.SourcePath}}</code> &mdash; rows: {{.Rows}}</p>
<section class="cards">
  <div class="card"><div class="label">Latest half-hour (gCO&#8322;/kWh)</div><div class="value">{{.LatestCI}}</div></div>
  <div class="card"><div class="label">7-day average (gCO&#8322;/kWh)</div><div class="value">{{.Rolling7}}</div></div>
</section>
<section class="chart-box">{{if .DailySVG}}{{.DailySVG}}{{else}}<p>{{.DailyNote}}</p>{{end}}</section>
<section class="chart-box">{{if .HourlySVG}}{{.HourlySVG}}{{else}}<p>{{.HourlyNote}}</p>{{end}}</section>
{{end}}
</body>
</html>
`

// IndexTemplate is the parsed dashboard page, registered on the router with SetHTMLTemplate.
func IndexTemplate() *template.Template {
	return template.Must(template.New(indexTemplateName).Parse(indexTemplate))
}

type pageData struct {
	Warning string
	Hint    string
	Error   string

	SourcePath string
	Rows       string

	LatestCI string
	Rolling7 string

	// go-chart output, rendered inline.
	DailySVG   template.HTML
	HourlySVG  template.HTML
	DailyNote  string
	HourlyNote string
}

// Index handles GET /. A missing snapshot renders guidance instead of charts.
func (h *DashboardHandler) Index(c *gin.Context) {
	l, err := h.load()
	if err != nil {
		if errors.Is(err, snapshot.ErrNoSnapshot) {
			c.HTML(http.StatusOK, indexTemplateName, pageData{
				Warning: "No processed CSV found. Run:",
				Hint:    FetchHint,
			})
			return
		}
		c.HTML(http.StatusInternalServerError, indexTemplateName, pageData{
			Error: fmt.Sprintf("Failed to load snapshot: %v", err),
		})
		return
	}

	s := l.report.Summary
	data := pageData{
		SourcePath: l.loc.Path,
		Rows:       formatThousands(len(l.readings)),
		LatestCI:   formatIntensity(s.LatestCI),
		Rolling7:   formatIntensity(s.Rolling7),
	}
	if svg, err := charts.DailySVG(l.report.Daily, l.report.Rolling); err == nil {
		data.DailySVG = template.HTML(svg)
	} else {
		data.DailyNote = chartNote("Daily trend", err)
	}
	if svg, err := charts.HourlySVG(l.report.Hourly); err == nil {
		data.HourlySVG = template.HTML(svg)
	} else {
		data.HourlyNote = chartNote("Hour-of-day profile", err)
	}
	c.HTML(http.StatusOK, indexTemplateName, data)
}

func chartNote(name string, err error) string {
	if errors.Is(err, charts.ErrNoData) {
		return name + ": no intensity values in this snapshot."
	}
	return fmt.Sprintf("%s unavailable: %v", name, err)
}

func formatIntensity(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.0f", *v)
}

func formatThousands(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatThousands(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
