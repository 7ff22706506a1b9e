// Package render turns prediction results into text and HTML.
package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/Skufu/GoPredict/internal/predict"
	"github.com/Skufu/GoPredict/internal/recommend"
)

// Text writes a plain listing: the disease, then each section with its items
// as "- item" lines (workout verbatim) or its notice.
func Text(w io.Writer, res predict.Result) error {
	if _, err := fmt.Fprintf(w, "Predicted Disease: %s\n", res.Disease); err != nil {
		return err
	}
	for _, sec := range res.Sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", sec.Title); err != nil {
			return err
		}
		if !sec.Available {
			if _, err := fmt.Fprintln(w, sec.Notice); err != nil {
				return err
			}
			continue
		}
		for _, item := range sec.Items {
			line := "- " + item
			if sec.Category == recommend.Workout {
				line = item
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Page is the data behind the HTML form.
type Page struct {
	Symptoms []string
	Selected map[string]bool
	Warning  string
	Error    string
	Result   *predict.Result
}

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// HTML renders the symptom form and, when present, the prediction.
func HTML(w io.Writer, p Page) error {
	return pageTemplate.Execute(w, p)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Disease Prediction</title>
</head>
<body>
<h1>Disease Prediction and Prescription</h1>
<form method="post" action="/predict">
<label for="symptoms">Select the symptoms you are experiencing:</label>
<select id="symptoms" name="symptoms" multiple size="12">
{{- range .Symptoms}}
<option value="{{.}}"{{if index $.Selected .}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<button type="submit">Predict</button>
</form>
{{- if .Warning}}
<p class="warning">{{.Warning}}</p>
{{- end}}
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
{{- with .Result}}
<h2 id="disease">Predicted Disease: {{.Disease}}</h2>
{{- range .Sections}}
<section class="category" data-category="{{.Category}}">
<h3>{{.Title}}</h3>
{{- if not .Available}}
<p class="notice">{{.Notice}}</p>
{{- else if eq .Category "workout"}}
{{- range .Items}}
<p class="item">{{.}}</p>
{{- end}}
{{- else}}
<ul>
{{- range .Items}}
<li class="item">{{.}}</li>
{{- end}}
</ul>
{{- end}}
</section>
{{- end}}
{{- end}}
</body>
</html>
`
