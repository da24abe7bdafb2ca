package export

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"time"

	"flowboard/internal/application/board"
	"flowboard/internal/domain/team"
	"flowboard/internal/domain/ticket"
	"flowboard/internal/shared/logger"
)

// Generator renders a board snapshot into a standalone HTML report.
type Generator struct {
	renderer *Renderer
	roster   *team.Roster
	logger   logger.Interface
}

func NewGenerator(roster *team.Roster, log logger.Interface) *Generator {
	return &Generator{
		renderer: NewRenderer(),
		roster:   roster,
		logger:   log.Named("export"),
	}
}

type reportCard struct {
	Ref         string
	Title       string
	Type        string
	Priority    string
	Assignee    string
	StoryPoints int
	Labels      []string
	Deadline    string
	Badge       string
	Description template.HTML
}

type reportColumn struct {
	Title string
	Count int
	Cards []reportCard
}

type reportData struct {
	GeneratedAt string
	Total       int
	Columns     []reportColumn
}

// Generate renders the board as of now. Tickets without a known column are
// left out, matching the board view.
func (g *Generator) Generate(b board.Board, now time.Time) ([]byte, error) {
	data := reportData{
		GeneratedAt: now.Format("Jan 2, 2006 15:04 MST"),
		Total:       b.TotalCount(),
	}

	for _, col := range b.Columns {
		rc := reportColumn{
			Title: col.Title,
			Count: col.Count(),
		}
		for _, t := range col.Tickets {
			card, err := g.card(t, now)
			if err != nil {
				return nil, err
			}
			rc.Cards = append(rc.Cards, card)
		}
		data.Columns = append(data.Columns, rc)
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	g.logger.Infow("report generated", "tickets", data.Total, "columns", len(data.Columns))
	return buf.Bytes(), nil
}

// WriteFile renders the board and writes the report to path.
func (g *Generator) WriteFile(path string, b board.Board, now time.Time) error {
	report, err := g.Generate(b, now)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, report, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

func (g *Generator) card(t *ticket.Ticket, now time.Time) (reportCard, error) {
	description, err := g.renderer.DescriptionHTML(t.Description())
	if err != nil {
		return reportCard{}, err
	}

	card := reportCard{
		Ref:         t.ShortRef(),
		Title:       t.Title(),
		Type:        t.Type().Label(),
		Priority:    t.Priority().String(),
		Assignee:    g.roster.NameFor(t.Assignee()),
		StoryPoints: t.StoryPoints(),
		Labels:      t.Labels(),
		Description: description,
	}

	if d := t.Deadline(); d != nil {
		card.Deadline = d.Format("Jan 2, 2006")
		card.Badge = string(t.DeadlineStatus(now))
	}

	return card, nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Board report</title>
<style>
body { font-family: sans-serif; margin: 2rem; background: #f5f6f8; color: #1f2430; }
h1 { font-size: 1.4rem; }
.meta { color: #6a7180; margin-bottom: 1.5rem; }
.board { display: flex; gap: 1rem; align-items: flex-start; }
.column { flex: 1; background: #e9ebf0; border-radius: 8px; padding: 0.75rem; }
.column h2 { font-size: 1rem; margin: 0 0 0.75rem; }
.card { background: #fff; border-radius: 6px; padding: 0.6rem 0.75rem; margin-bottom: 0.6rem; box-shadow: 0 1px 2px rgba(0,0,0,0.08); }
.card .ref { color: #6a7180; font-size: 0.75rem; font-family: monospace; }
.card h3 { font-size: 0.9rem; margin: 0.2rem 0 0.4rem; }
.tags span { display: inline-block; font-size: 0.7rem; border-radius: 4px; padding: 0.1rem 0.4rem; margin-right: 0.3rem; background: #e1e4ea; }
.deadline { font-size: 0.75rem; margin-top: 0.3rem; }
.deadline.overdue { color: #c0392b; font-weight: bold; }
.deadline.urgent { color: #d35400; }
.deadline.upcoming { color: #b7950b; }
.deadline.normal { color: #6a7180; }
.description { font-size: 0.8rem; color: #3b4252; margin-top: 0.4rem; }
</style>
</head>
<body>
<h1>Board report</h1>
<p class="meta">Generated {{.GeneratedAt}} &middot; {{.Total}} tickets</p>
<div class="board">
{{range .Columns}}<div class="column">
<h2>{{.Title}} ({{.Count}})</h2>
{{range .Cards}}<div class="card">
<span class="ref">{{.Ref}}</span>
<h3>{{.Title}}</h3>
<div class="tags"><span>{{.Type}}</span><span>{{.Priority}}</span><span>{{.Assignee}}</span>{{if .StoryPoints}}<span>{{.StoryPoints}} pts</span>{{end}}{{range .Labels}}<span>{{.}}</span>{{end}}</div>
{{if .Deadline}}<div class="deadline {{.Badge}}">Due {{.Deadline}}</div>{{end}}
{{if .Description}}<div class="description">{{.Description}}</div>{{end}}
</div>
{{end}}</div>
{{end}}</div>
</body>
</html>
`))
