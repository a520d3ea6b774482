package site

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}{{if .SiteTitle}} · {{.SiteTitle}}{{end}}</title>
{{if .Summary}}<meta name="description" content="{{.Summary}}">
{{end}}<script src="/assets/main.js" defer></script>
</head>
<body>
<header class="site-header">
<a class="site-title" href="/">{{.SiteTitle}}</a>
<button class="theme-toggle" type="button" aria-label="Toggle dark mode">Theme</button>
</header>
<main>
<article class="post">
<h1 class="post-title">{{.Title}}</h1>
<div class="post-meta">{{if not .Date.IsZero}}<time datetime="{{.Date.Format "2006-01-02"}}">{{.Date.Format "January 2, 2006"}}</time>{{end}}{{range .Tags}} <span class="tag">{{.}}</span>{{end}}</div>
{{.Body}}
</article>
</main>
</body>
</html>
`

const indexTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.SiteTitle}}</title>
<script src="/assets/main.js" defer></script>
</head>
<body>
<header class="site-header">
<a class="site-title" href="/">{{.SiteTitle}}</a>
<button class="theme-toggle" type="button" aria-label="Toggle dark mode">Theme</button>
</header>
<main>
<ul class="post-list">
{{range .Posts}}<li><a href="/posts/{{.Slug}}/">{{.Title}}</a>{{if not .Date.IsZero}} <time datetime="{{.Date.Format "2006-01-02"}}">{{.Date.Format "Jan 2, 2006"}}</time>{{end}}{{if .Summary}}<p class="summary">{{.Summary}}</p>{{end}}</li>
{{end}}</ul>
</main>
</body>
</html>
`
