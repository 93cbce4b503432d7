// Package wodlog embeds the web form templates served by wodserver.
package wodlog

import "embed"

//go:embed web/templates
var WebFS embed.FS
