package view_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/ideabox/internal/domain"
	"github.com/msomdec/ideabox/internal/view"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestIdeasPage_EscapesUserContent(t *testing.T) {
	html := render(t, view.IdeasPage("<b>nick</b>", []domain.Idea{
		{ID: 7, Title: `<script>alert("x")</script>`, Memo: "a & b"},
	}, view.Flash{}))

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, `&lt;script&gt;`)
	assert.Contains(t, html, `a &amp; b`)
	assert.Contains(t, html, `&lt;b&gt;nick&lt;/b&gt;`)
	assert.Contains(t, html, `id="idea-7"`)
}

func TestIdeasPage_Order(t *testing.T) {
	html := render(t, view.IdeasPage("Alice", []domain.Idea{
		{ID: 3, Title: "third"},
		{ID: 1, Title: "first"},
	}, view.Flash{}))

	assert.Less(t, bytes.Index([]byte(html), []byte("third")), bytes.Index([]byte(html), []byte("first")))
	assert.Contains(t, html, `<p id="empty-state" hidden></p>`)
}

func TestIdeasPage_EmptyState(t *testing.T) {
	html := render(t, view.IdeasPage("Alice", nil, view.Flash{}))
	assert.Contains(t, html, "No ideas yet")
}

func TestFlashMessage(t *testing.T) {
	assert.Equal(t, `<div id="flash"></div>`, render(t, view.FlashMessage(view.Flash{})))

	html := render(t, view.FlashMessage(view.Flash{Kind: view.FlashError, Message: "Title can't be empty"}))
	assert.Contains(t, html, `flash-error`)
	assert.Contains(t, html, `Title can&#39;t be empty`)
}

func TestLoginAndRegisterPages(t *testing.T) {
	login := render(t, view.LoginPage(view.Flash{Kind: view.FlashSuccess, Message: "Registered"}))
	assert.Contains(t, login, `action="/login"`)
	assert.Contains(t, login, `name="login_id"`)
	assert.Contains(t, login, "Registered")

	register := render(t, view.RegisterPage(view.Flash{}))
	assert.Contains(t, register, `action="/register"`)
	assert.Contains(t, register, `name="nickname"`)
}

func TestLayout_NavDependsOnNickname(t *testing.T) {
	anon := render(t, view.LoginPage(view.Flash{}))
	assert.Contains(t, anon, `<a href="/register">Register</a>`)
	assert.NotContains(t, anon, `href="/logout"`)

	signedIn := render(t, view.IdeasPage("Alice", nil, view.Flash{}))
	assert.Contains(t, signedIn, `<span class="who">Alice</span>`)
	assert.Contains(t, signedIn, `href="/logout"`)
	assert.Contains(t, signedIn, `<title>Ideas - ideabox</title>`)
}

func TestIdeaCard_MemoOptional(t *testing.T) {
	html := render(t, view.IdeaCard(domain.Idea{ID: 4, Title: "t"}))
	assert.Equal(t, `<li class="idea" id="idea-4"><strong>t</strong></li>`, html)

	html = render(t, view.IdeaCard(domain.Idea{ID: 5, Title: "t", Memo: "m"}))
	assert.Contains(t, html, `<p>m</p>`)
}
