package server

import "html/template"

// View rendering is deliberately minimal: unstyled pages with just enough
// markup to drive the flows.

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>{{.AppName}}</h1>
{{if .User}}
<p>Logged in as <strong>{{.User.Username}}</strong></p>
<p><a href="/protected">Protected</a> | <a href="/log-out">Log out</a></p>
{{else}}
<p><a href="/sign-up">Sign up</a> | <a href="/log-in">Log in</a></p>
{{end}}
</body>
</html>
`))

var signUpTmpl = template.Must(template.New("sign-up").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>Sign up</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="POST" action="/sign-up">
<input name="username" placeholder="username" value="{{.Username}}">
<input name="password" type="password" placeholder="password">
<button type="submit">Sign up</button>
</form>
</body>
</html>
`))

var logInTmpl = template.Must(template.New("log-in").Parse(`<!DOCTYPE html>
<html>
<body>
<h1>Log in</h1>
{{if .Error}}<p>{{.Error}}</p>{{end}}
<form method="POST" action="/log-in">
<input name="username" placeholder="username" value="{{.Username}}">
<input name="password" type="password" placeholder="password">
<button type="submit">Log in</button>
</form>
</body>
</html>
`))
