package formatter

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/yildizm/LifeStrat/internal/markup"
	"github.com/yildizm/LifeStrat/internal/wizard"
)

const htmlPage = `<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>Strategy Report: {{.Report.Name}}</title>
</head>
<body>
<div class="analysis-result">
{{.Analysis}}
</div>
{{- if .ShowProfile}}
<div class="profile-summary">
<h2>{{.Icon}}プロファイル概要</h2>
<div class="profile-grid">
<div class="profile-item">
<strong>数秘術プロファイル</strong>
<p>Life Path: {{.Report.Numerology.LifePath}}</p>
<p>Destiny: {{.Report.Numerology.Destiny}}</p>
<p>Soul: {{.Report.Numerology.Soul}}</p>
<p>Personal Year: {{.Report.Numerology.PersonalYear}}</p>
</div>
<div class="profile-item">
<strong>九星気学プロファイル</strong>
<p>本命星: {{.Report.Kigaku.HonmeiName}}</p>
<p>現在の座相: {{.Report.Kigaku.PositionName}}</p>
</div>
</div>
</div>
{{- end}}
</body>
</html>
`

var htmlTemplate = template.Must(template.New("report").Parse(htmlPage))

// htmlFormatter renders a standalone HTML page
type htmlFormatter struct {
	emoji       bool
	hideProfile bool
}

// NewHTML creates an HTML formatter
func NewHTML(o Options) Formatter {
	return &htmlFormatter{emoji: o.Emoji, hideProfile: o.HideProfile}
}

func (f *htmlFormatter) Format(report *wizard.Report) ([]byte, error) {
	if report == nil {
		return nil, ErrNilReport
	}

	icon := ""
	if f.emoji {
		icon = "📊 "
	}

	var b bytes.Buffer
	err := htmlTemplate.Execute(&b, struct {
		Report      *wizard.Report
		Analysis    template.HTML
		ShowProfile bool
		Icon        string
	}{
		Report:      report,
		Analysis:    FragmentHTML(report.Fragment),
		ShowProfile: !f.hideProfile,
		Icon:        icon,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render html: %w", err)
	}
	return b.Bytes(), nil
}

// FragmentHTML renders a fragment as HTML. All literal text is escaped.
func FragmentHTML(frag markup.Fragment) template.HTML {
	var b strings.Builder
	for _, n := range frag {
		switch n.Kind {
		case markup.KindHeading:
			level := n.Level
			if level < 1 || level > 3 {
				level = 1
			}
			fmt.Fprintf(&b, "<h%d>%s</h%d>", level, inlineHTML(n.Children), level)
		case markup.KindList:
			b.WriteString("<ul>")
			for _, item := range n.Children {
				b.WriteString("<li>" + inlineHTML(item.Children) + "</li>")
			}
			b.WriteString("</ul>")
		case markup.KindRule:
			b.WriteString("<hr>")
		default:
			b.WriteString(inlineHTML([]markup.Node{n}))
		}
	}
	return template.HTML(b.String()) //nolint:gosec // literals are escaped above
}

func inlineHTML(nodes []markup.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case markup.KindEmphasis:
			b.WriteString("<strong>" + html.EscapeString(n.Text()) + "</strong>")
		case markup.KindBreak:
			b.WriteString("<br>")
		default:
			b.WriteString(html.EscapeString(n.Text()))
		}
	}
	return b.String()
}
