package web

import "html/template"

var homeTmpl = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head><title>Companies</title></head>
<body>
<h1>Companies</h1>
<ul>
{{range .Companies}}  <li>{{.Name}} - {{.CEO}}</li>
{{end}}</ul>
</body>
</html>
`))

var unavailableTmpl = template.Must(template.New("unavailable").Parse(`<!DOCTYPE html>
<html>
<head><title>Companies</title></head>
<body>
<h1>Companies</h1>
<p>The company list is temporarily unavailable. Please try again later.</p>
</body>
</html>
`))

// debugTmpl is only ever rendered when debug mode is on; it deliberately
// exposes process state to help diagnose a broken deployment.
var debugTmpl = template.Must(template.New("debug").Parse(`<!DOCTYPE html>
<html>
<head><title>Companies - debug</title></head>
<body>
<h1>Company list failed</h1>
<p>Error: {{.Error}}</p>
<p>Working directory: {{.WorkingDir}}</p>
<p>Executable: {{.Executable}}</p>
<p>App root: {{.AppRoot}}</p>
<ul>
{{range .Entries}}  <li>{{.}}</li>
{{end}}</ul>
</body>
</html>
`))

var companyListTmpl = template.Must(template.New("company_list").Parse(`<!DOCTYPE html>
<html>
<head><title>Company directory</title></head>
<body>
<h1>Company directory</h1>
<ul>
{{range .Companies}}  <li><a href="/company/{{.ID}}">{{.Name}}</a></li>
{{end}}</ul>
</body>
</html>
`))

var companyDetailTmpl = template.Must(template.New("company_detail").Parse(`<!DOCTYPE html>
<html>
<head><title>{{.Company.Name}}</title></head>
<body>
<h1>{{.Company.Name}}</h1>
<p>CEO: {{.Company.CEO}}</p>
<p>Origin: {{.Company.Origin}}</p>
<p>Established: {{.Company.EstYear}}</p>
</body>
</html>
`))
