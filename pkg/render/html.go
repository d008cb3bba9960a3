package render

import (
	"strings"

	"github.com/russross/blackfriday"
)

// Telegram accepts only a small subset of HTML tags. Everything blackfriday
// emits beyond that subset is rewritten to plain text or to an allowed tag.
var telegramTags = strings.NewReplacer(
	"<p>", "",
	"</p>", "\n",
	"<br>", "\n",
	"<br/>", "\n",
	"<br />", "\n",
	"<hr>", "\n",
	"<hr/>", "\n",
	"<hr />", "\n",
	"<ul>", "",
	"</ul>", "",
	"<ol>", "",
	"</ol>", "",
	"<li>", "• ",
	"</li>", "\n",
	"<blockquote>", "",
	"</blockquote>", "",
	"<h1>", "<b>",
	"</h1>", "</b>\n",
	"<h2>", "<b>",
	"</h2>", "</b>\n",
	"<h3>", "<b>",
	"</h3>", "</b>\n",
	"<h4>", "<b>",
	"</h4>", "</b>\n",
	"<h5>", "<b>",
	"</h5>", "</b>\n",
	"<h6>", "<b>",
	"</h6>", "</b>\n",
)

// ToHTML renders markdown to the HTML subset Telegram understands.
func ToHTML(markdown string) string {
	html := string(blackfriday.MarkdownCommon([]byte(markdown)))
	return strings.TrimSpace(telegramTags.Replace(html))
}
