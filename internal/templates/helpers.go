package templates

import (
	"context"
	"html/template"
	"io"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/Vishal-AsthraMedtech/daily-task-tracker/internal/domain"
)

var funcs = template.FuncMap{
	"hours":   hoursDisplay,
	"seq":     func(i int) int { return i + 1 },
	"itoa":    strconv.Itoa,
	"stamp":   stamp,
	"success": func(o domain.Outcome) bool { return o == domain.OutcomeSuccess },
	"short": func(id string) string {
		if len(id) > 8 {
			return id[:8]
		}
		return id
	},
}

// hoursDisplay prints hours in their shortest form, e.g. 7.5 or 8.
func hoursDisplay(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}

// component adapts a named html/template to templ.Component so handlers can
// render every page the same way.
func component(t *template.Template, name string, data any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}
