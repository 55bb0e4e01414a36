package web

import (
	_ "embed"
	"encoding/json"
	"strings"

	"github.com/idursun/rebase-edit/internal/protocol"
)

//go:embed index.html
var indexHTML string

const rootToken = "#{root}"

// Render produces the presentation surface's initial markup: every root-path
// token in the template is substituted and a bootstrap script carrying the
// serialized initial snapshot is injected. The embedded payload stands in for
// an initial `ready` round-trip.
func Render(root string, model protocol.PlanModel) (string, error) {
	return RenderTemplate(indexHTML, root, model)
}

func RenderTemplate(html, root string, model protocol.PlanModel) (string, error) {
	state, err := json.Marshal(model)
	if err != nil {
		return "", err
	}
	html = strings.ReplaceAll(html, rootToken, root)
	bootstrap := `<script type="text/javascript">window.bootstrap = ` + string(state) + `;</script>`
	if i := strings.LastIndex(html, "</body>"); i >= 0 {
		return html[:i] + bootstrap + html[i:], nil
	}
	return html + bootstrap, nil
}
