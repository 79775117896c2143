// file: controllers/templates.go
package controllers

import (
	"fmt"
	"html/template"
	"time"

	"go-ballpark/derive"
	"go-ballpark/models"
)

// TemplateFuncs exposes the derived-view helpers to templates.
func TemplateFuncs(loc *time.Location) template.FuncMap {
	return template.FuncMap{
		"statusLabel": derive.StatusLabel,
		"winRate":     derive.FormatWinRate,
		"gamesBehind": derive.FormatGamesBehind,
		"teamLogo":    derive.TeamLogo,
		"badge":       derive.PredictionBadge,
		"winLoss": func(g models.Game) []string {
			home, away := derive.WinLoss(g)
			return []string{home, away}
		},
		"localTime": func(t models.LocalTime) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02 15:04")
		},
		"formTime": func(t models.LocalTime) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("2006-01-02T15:04")
		},
		"derefTime": func(t *models.LocalTime) models.LocalTime {
			if t == nil {
				return models.LocalTime{}
			}
			return *t
		},
		"percent": func(v float64) string { return fmt.Sprintf("%.1f%%", v) },
		"score": func(p *int) string {
			if p == nil {
				return "-"
			}
			return fmt.Sprint(*p)
		},
		"deref": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"pages": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
		"add": func(a, b int) int { return a + b },
		"teamID": func(t *models.Team) int64 {
			if t == nil {
				return 0
			}
			return t.ID
		},
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}
