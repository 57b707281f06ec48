package web

import (
    "bytes"
    "fmt"
    "html/template"

    "github.com/jaminalder/codex-arcade/internal/app"
    "github.com/jaminalder/codex-arcade/internal/catalog"
    "github.com/jaminalder/codex-arcade/internal/domain"
)

type templates struct {
    base  *template.Template
    game  *template.Template
    board *template.Template
    index *template.Template
}

func funcs() template.FuncMap {
    return template.FuncMap{
        "clock": clockText,
    }
}

func clockText(sec int) string { return fmt.Sprintf("%d:%02d", sec/60, sec%60) }

func loadTemplates() *templates {
    base := template.Must(template.New("base").Funcs(funcs()).Parse(`<!doctype html><html><head>
<meta charset="utf-8"/>
<title>Arcade</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org/dist/ext/sse.js"></script>
</head><body>{{template "content" .}}</body></html>`))
    template.Must(base.New("board").Parse(boardTemplate))
    index := template.Must(template.Must(base.Clone()).New("content").Parse(indexTemplate))
    game := template.Must(template.Must(base.Clone()).New("content").Parse(`
<p><a href="/">Arcade</a></p>
<div hx-ext="sse" sse-connect="/game/{{.ID}}/events">
  <div id="stage" sse-swap="board">{{template "board" .}}</div>
</div>`))
    // Standalone board template used for fragment rendering
    board := template.Must(template.New("board_only").Funcs(funcs()).Parse(boardTemplate))
    return &templates{base: base, game: game, board: board, index: index}
}

func renderTemplate(t *template.Template, name string, data any) []byte {
    var buf bytes.Buffer
    if name == "" {
        _ = t.Execute(&buf, data)
    } else {
        _ = t.ExecuteTemplate(&buf, name, data)
    }
    return buf.Bytes()
}

const indexTemplate = `<h1>Arcade</h1>
{{range .Games}}
<form action="/game" method="post">
  <input type="hidden" name="kind" value="{{.Kind}}">
  <button>{{.Title}}</button>
</form>
{{end}}
<h2>Memory</h2>
<form action="/game" method="post">
  <input type="hidden" name="kind" value="memory">
  <select name="theme">
    {{range .Themes}}<option value="{{.ID}}">{{.Name}}</option>{{end}}
  </select>
  <select name="difficulty">
    {{range .Difficulties}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  <button>Play</button>
</form>`

const boardTemplate = `
<div id="board" data-kind="{{.Kind}}" data-status="{{.Status}}">
  {{if .Error}}
  <div class="alert">{{.Error}}</div>
  {{end}}
  <div class="info">{{.Status}}{{range .Info}} | {{.}}{{end}}</div>
  {{if .Rows}}
  {{range .Rows}}
  <div class="row">
    {{range .}}
      <form hx-post="/game/{{$.ID}}/input" hx-target="#board" hx-swap="outerHTML" method="post">
        <input type="hidden" name="r" value="{{.R}}">
        <input type="hidden" name="c" value="{{.C}}">
        <button type="submit">{{.Label}}</button>
      </form>
    {{end}}
  </div>
  {{end}}
  {{else}}
  <pre>{{.Text}}</pre>
  {{end}}
  {{if .Arrows}}
  <div class="arrows">
    {{range .Directions}}
    <form hx-post="/game/{{$.ID}}/input" hx-target="#board" hx-swap="outerHTML" method="post">
      <input type="hidden" name="dir" value="{{.}}">
      <button type="submit">{{.}}</button>
    </form>
    {{end}}
    {{if .Pause}}
    <form hx-post="/game/{{.ID}}/input" hx-target="#board" hx-swap="outerHTML" method="post">
      <input type="hidden" name="action" value="pause">
      <button type="submit">pause</button>
    </form>
    {{end}}
  </div>
  {{end}}
  <form hx-post="/game/{{.ID}}/restart" hx-target="#board" hx-swap="outerHTML" method="post">
    <button type="submit">restart</button>
  </form>
</div>
`

type indexData struct {
    Games        []catalog.Game
    Themes       []catalog.Theme
    Difficulties []catalog.Difficulty
}

type cellView struct {
    R, C  int
    Label string
}

// boardView is the template model of one game.
type boardView struct {
    ID         string
    Kind       domain.Kind
    Status     string
    Info       []string
    Rows       [][]cellView
    Text       string
    Arrows     bool
    Directions []string
    Pause      bool
    Error      string
}

func newBoardView(gs app.GameState, errMsg string) boardView {
    v := boardView{
        ID:         gs.ID,
        Kind:       gs.Kind,
        Status:     gs.Game.Status().String(),
        Error:      errMsg,
        Directions: []string{"up", "left", "down", "right"},
    }
    switch g := gs.Game.(type) {
    case domain.TicTacToe:
        v.Rows = grid(3, 3, func(r, c int) string {
            if m := g.Board[r*3+c]; m != domain.Empty {
                return m.String()
            }
            return ""
        })
        if !g.State.Terminal() {
            v.Info = append(v.Info, "turn "+g.Turn.String())
        } else if g.Winner != domain.Empty {
            v.Info = append(v.Info, "winner "+g.Winner.String())
        }
    case domain.Checkers:
        v.Rows = grid(8, 8, func(r, c int) string {
            label := checkerLabel(g.Board[r][c])
            if g.Picked && g.Selected == (domain.Position{Row: r, Col: c}) {
                label = "[" + label + "]"
            }
            return label
        })
        v.Info = append(v.Info, "turn "+g.Turn.String(),
            fmt.Sprintf("black %d", g.Count(domain.Black)),
            fmt.Sprintf("white %d", g.Count(domain.White)))
    case domain.Game2048:
        v.Text = g.String()
        v.Arrows = true
        v.Info = append(v.Info, fmt.Sprintf("score %d", g.Score))
    case domain.Snake:
        v.Text = g.String()
        v.Arrows = true
        v.Pause = true
        v.Info = append(v.Info, fmt.Sprintf("score %d", g.Score))
        if g.Paused {
            v.Info = append(v.Info, "paused")
        }
    case domain.Memory:
        v.Rows = grid(len(g.Cards)/4, 4, func(r, c int) string {
            card := g.Cards[r*4+c]
            if card.FaceUp || card.Matched {
                return card.Symbol
            }
            return "?"
        })
        v.Info = append(v.Info, fmt.Sprintf("moves %d", g.Moves),
            "time "+clockText(g.Remaining))
        if gs.Best > 0 {
            v.Info = append(v.Info, fmt.Sprintf("best %d", gs.Best))
        }
    default:
        v.Text = gs.Game.String()
    }
    return v
}

func grid(rows, cols int, label func(r, c int) string) [][]cellView {
    out := make([][]cellView, rows)
    for r := range out {
        out[r] = make([]cellView, cols)
        for c := range out[r] {
            out[r][c] = cellView{R: r, C: c, Label: label(r, c)}
        }
    }
    return out
}

func checkerLabel(p domain.Piece) string {
    switch p {
    case domain.Black:
        return "b"
    case domain.White:
        return "w"
    }
    return ""
}
