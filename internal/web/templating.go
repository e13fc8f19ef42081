// filepath: internal/web/templating.go
// Package web renders the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"sync"
	"time"

	"blogapp/internal/logging"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templatesCache sync.Map

const siteName = "My Blog"

// RenderTemplate renders the named page inside the shared layout. The status
// code must already be written by the caller when it isn't 200.
func RenderTemplate(w http.ResponseWriter, templateName string, data any) {
	type GlobalTemplateData struct {
		SiteName string
	}

	templateData := struct {
		Global GlobalTemplateData
		Data   any
	}{
		Global: GlobalTemplateData{SiteName: siteName},
		Data:   data,
	}

	actualTemplate, ok := templatesCache.Load(templateName)
	if !ok {
		baseTemplate := template.New("layout.html").Funcs(template.FuncMap{
			"parseMarkdown": func(markdownStr string) template.HTML {
				extensions := parser.CommonExtensions | parser.AutoHeadingIDs
				p := parser.NewWithExtensions(extensions)
				doc := p.Parse([]byte(markdownStr))

				htmlFlags := mdhtml.CommonFlags | mdhtml.HrefTargetBlank
				renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: htmlFlags})

				return template.HTML(markdown.Render(doc, renderer))
			},
			"dateFmt": func(layout string, t time.Time) string {
				return t.Format(layout)
			},
		})

		baseTemplate = template.Must(baseTemplate.ParseFS(templatesFS, "templates/layout.html"))
		actualTemplate = template.Must(baseTemplate.ParseFS(templatesFS, "templates/"+templateName+".html"))

		templatesCache.Store(templateName, actualTemplate)
	}

	if err := actualTemplate.(*template.Template).Execute(w, templateData); err != nil {
		logging.Log.Errorf("Template execution error: %v", err)
	}
}
