package http

import (
	"html/template"
	"net/http"

	"github.com/pkg/errors"
)

var interstitialTemplate = template.Must(template.New("interstitial").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="robots" content="noindex">
<title>Warning: suspicious link</title>
</head>
<body>
<h1>This link may be unsafe</h1>
<p>The link you followed was flagged by our safety scanner. It leads to:</p>
<p><code>{{.Target}}</code></p>
<p>
<a href="{{.Target}}" rel="noopener noreferrer nofollow">Proceed anyway</a>
<button type="button" onclick="history.back()">Go back</button>
</p>
</body>
</html>
`))

func renderInterstitial(w http.ResponseWriter, target string) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := interstitialTemplate.Execute(w, struct{ Target string }{Target: target}); err != nil {
		return errors.Wrap(err, "render interstitial failed")
	}
	return nil
}
