package server

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/meltforce/wodlog/internal/workout"
)

type formPage struct {
	Notation string
	Name     string
	Comments string
	Markdown string
	HTML     template.HTML
	Error    string
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, http.StatusOK, formPage{})
}

// handleFormRender compiles the submitted notation and shows the markdown
// next to its HTML preview.
func (s *Server) handleFormRender(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, http.StatusBadRequest, formPage{Error: err.Error()})
		return
	}
	page := formPage{
		Notation: r.PostFormValue("notation"),
		Name:     r.PostFormValue("name"),
		Comments: r.PostFormValue("comments"),
	}

	md, _, err := workout.Compile(page.Notation, page.Comments, page.Name)
	if err != nil {
		page.Error = err.Error()
		s.renderPage(w, http.StatusUnprocessableEntity, page)
		return
	}

	html, err := markdownToHTML(md)
	if err != nil {
		s.log.Error("converting markdown", "error", err)
		page.Error = "could not render preview"
		s.renderPage(w, http.StatusInternalServerError, page)
		return
	}
	page.Markdown = md
	page.HTML = html
	s.renderPage(w, http.StatusOK, page)
}

func markdownToHTML(md string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (s *Server) renderPage(w http.ResponseWriter, status int, page formPage) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, "index.html", page); err != nil {
		s.log.Error("executing template", "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
