// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Command webdemo is a small web demo that sits alongside the repair
// engine: a form that accepts pasted text, repairs it, and shows the
// result next to the log of repairs applied. It carries none of the
// engine's hard engineering; it exists to exercise the public API from an
// HTTP handler.
package main

import (
	"flag"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cflynn/jsonrepair"
)

var addr = flag.String("addr", ":8080", "listen address")

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html><head><title>jsonrepair</title></head>
<body>
<h1>jsonrepair</h1>
<form method="POST" action="/repair">
<textarea name="input" rows="12" cols="80">{{.Input}}</textarea><br>
<label><input type="checkbox" name="strict" {{if .Strict}}checked{{end}}> strict</label>
<label><input type="checkbox" name="ensure_ascii" {{if .EnsureASCII}}checked{{end}}> ensure_ascii</label>
<label>indent <input type="number" name="indent" value="{{.Indent}}" style="width:3em"></label>
<br><button type="submit">Repair</button>
</form>
{{if .Error}}<pre style="color:darkred">{{.Error}}</pre>{{end}}
{{if .Output}}<h2>Result</h2><pre>{{.Output}}</pre>{{end}}
{{if .Log}}<h2>Repairs applied ({{len .Log}})</h2><ul>
{{range .Log}}<li><b>{{.Context}}</b>: <code>{{.Window}}</code></li>{{end}}
</ul>{{end}}
</body></html>`))

type pageData struct {
	Input       string
	Strict      bool
	EnsureASCII bool
	Indent      int
	Output      string
	Error       string
	Log         []jsonrepair.LogEntry
}

func main() {
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handleIndex)
	mux.HandleFunc("POST /repair", handleRepair)

	logrus.WithField("addr", *addr).Info("starting webdemo")
	if err := http.ListenAndServe(*addr, withRequestLog(mux)); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Info("request")
	})
}

func handleIndex(w http.ResponseWriter, r *http.Request) {
	renderPage(w, pageData{})
}

func handleRepair(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	data := pageData{
		Input:       r.FormValue("input"),
		Strict:      r.FormValue("strict") != "",
		EnsureASCII: r.FormValue("ensure_ascii") != "",
	}
	if s := r.FormValue("indent"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			data.Indent = n
		}
	}

	out, entries, err := jsonrepair.RepairWithLog(data.Input, jsonrepair.Options{
		Strict:      data.Strict,
		EnsureASCII: data.EnsureASCII,
		Indent:      data.Indent,
	})
	if err != nil {
		data.Error = err.Error()
	} else {
		data.Output = out
		data.Log = entries
	}
	renderPage(w, data)
}

func renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		logrus.WithError(err).Error("rendering page")
	}
}
