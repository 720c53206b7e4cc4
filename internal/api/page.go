package api

import (
	"html/template"
	"net/http"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dannyfullextent/explorer/internal/catalog"
)

// pageRow pairs an entity with the keywords tagging its table row.
type pageRow struct {
	Entity *catalog.ServiceEntity
	Tags   []string
}

type pageData struct {
	Rows        []pageRow
	Index       catalog.CategoryIndex
	GeneratedAt time.Time
}

// TypeNames returns the type filter values in stable order.
func (d pageData) TypeNames() []string {
	names := make([]string, 0, len(d.Index.Types))
	for name := range d.Index.Types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeywordNames returns the keyword filter values in stable order.
func (d pageData) KeywordNames() []string {
	names := make([]string, 0, len(d.Index.Keywords))
	for name := range d.Index.Keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var pageTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Service Catalog</title>
<style>
body { font-family: sans-serif; margin: 1.5rem; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f0f0f0; }
.tag { display: inline-block; background: #e3ecf7; border-radius: 3px;
       padding: 0 0.3rem; margin-right: 0.2rem; font-size: 0.85em; }
.unavailable { color: #a00; }
.filters { margin-bottom: 1rem; }
</style>
</head>
<body>
<h1>Service Catalog</h1>
<p>Generated {{.GeneratedAt.Format "2006-01-02 15:04:05 MST"}} &middot; {{len .Rows}} services</p>
<div class="filters">
<label>Type:
<select id="type-filter">
<option value="">all</option>
{{range .TypeNames}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</label>
<label>Keyword:
<select id="keyword-filter">
<option value="">all</option>
{{range .KeywordNames}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</label>
</div>
<table>
<thead>
<tr><th>Name</th><th>Type</th><th>Folder</th><th>Description</th><th>Keywords</th><th>Spatial Ref</th><th>Status</th></tr>
</thead>
<tbody>
{{range .Rows}}<tr data-type="{{.Entity.Type}}" data-keywords="{{range .Tags}}{{.}} {{end}}">
<td><a href="{{.Entity.URL}}">{{.Entity.Name}}</a></td>
<td>{{.Entity.Type}}</td>
<td>{{.Entity.Folder}}</td>
<td>{{.Entity.Description}}</td>
<td>{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</td>
<td>{{.Entity.SpatialReference}}</td>
<td>{{if .Entity.Available}}up{{else}}<span class="unavailable">down</span>{{end}}</td>
</tr>
{{end}}</tbody>
</table>
<script>
function applyFilters() {
  var type = document.getElementById('type-filter').value;
  var keyword = document.getElementById('keyword-filter').value;
  document.querySelectorAll('tbody tr').forEach(function (row) {
    var okType = !type || row.dataset.type === type;
    var okKw = !keyword || row.dataset.keywords.split(' ').indexOf(keyword) >= 0;
    row.style.display = okType && okKw ? '' : 'none';
  });
}
document.getElementById('type-filter').addEventListener('change', applyFilters);
document.getElementById('keyword-filter').addEventListener('change', applyFilters);
</script>
</body>
</html>
`))

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render catalog page failed", zap.Error(err))
	}
}
