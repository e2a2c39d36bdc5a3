package hub

import (
	"html/template"
	"net/http"
)

var pageTpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
.cards { display: flex; gap: 1rem; }
.card { border: 1px solid #ddd; border-radius: 6px; padding: 1rem 1.5rem; flex: 1; }
.card a { display: inline-block; margin-top: .5rem; }
footer { margin-top: 2rem; color: #888; font-size: .85rem; border-top: 1px solid #eee; padding-top: .5rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Single entry point to the analysis applications.</p>
<div class="cards">
{{range .Apps}}<div class="card">
<h2>{{.Title}}</h2>
<p>{{.Description}}</p>
<a href="{{.PublicURL}}">Open {{.Title}}</a>
</div>
{{end}}</div>
<footer>One access point to all modules.</footer>
</body>
</html>
`))

// Page renders the landing catalog.
type Page struct {
	Title string
	Apps  []App
}

func (p Page) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = pageTpl.Execute(w, p)
}
