package render

import (
	"fmt"
	"strings"
)

// =============================================================================
// PAGE SHELL - Static document template with two substitution points
// =============================================================================

// Shell is the outer document template. It carries exactly two substitution
// points, {{CONTENT}} and {{STYLE}}, spliced by literal substring
// replacement; everything else in it is static text.
type Shell string

const shellTemplate = `<!DOCTYPE html>
<html>
    <head>
        <title>%s</title>
        <meta charset="utf-8" />
        <style type="text/css">
            table {
                margin: 10px;
                border-collapse: collapse;
                border-spacing: 0;
            }
            table.month {
                border: 1px solid #707070;
            }
            td {
                padding: 10px;
                vertical-align: top;
            }
            .day {
                border: 1px solid #707070;
            }
        </style>
        <style type="text/css">
            {{STYLE}}
        </style>
    </head>
    <body>
        {{CONTENT}}
    </body>
</html>
`

// NewShell returns the standard shell with the given page title.
func NewShell(title string) Shell {
	return Shell(fmt.Sprintf(shellTemplate, title))
}

// DefaultShell is the standard shell with a neutral title.
var DefaultShell = NewShell("Activity calendar")

// Render splices the calendar markup and the stylesheet text into the
// shell, content first, then style, both verbatim.
func (s Shell) Render(content, style string) string {
	out := strings.ReplaceAll(string(s), "{{CONTENT}}", content)
	return strings.ReplaceAll(out, "{{STYLE}}", style)
}
