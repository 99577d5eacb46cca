package hywire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

// TestResult holds the output of rendering a component or exercising one of
// its routes in tests.
type TestResult struct {
	HTML       string
	StatusCode int
	Headers    http.Header
}

// HTMLContains reports whether the rendered markup contains the substring.
func (tr *TestResult) HTMLContains(s string) bool {
	return strings.Contains(tr.HTML, s)
}

// IsOK reports whether the status code is in the 2xx range.
func (tr *TestResult) IsOK() bool {
	return tr.StatusCode >= 200 && tr.StatusCode < 300
}

// TestRender renders a defined component from raw attributes and returns
// testable output. Use for unit tests of the definition pipeline without
// HTTP mechanics:
//
//	result, err := hywire.TestRender(reg, "todo-item", map[string]string{"title": "Milk"})
//	if !result.HTMLContains("Milk") {
//	    t.Fatal("missing expected content")
//	}
func TestRender(reg *Registry, name string, attrs map[string]string) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), reg, name, attrs)
}

// TestRenderWithContext is TestRender with a caller-supplied context, for
// components whose render functions read request-scoped values.
func TestRenderWithContext(ctx context.Context, reg *Registry, name string, attrs map[string]string) (*TestResult, error) {
	markup, err := reg.Render(ctx, name, attrs, nil)
	if err != nil {
		return nil, err
	}
	return &TestResult{
		HTML:       markup,
		StatusCode: http.StatusOK,
		Headers:    make(http.Header),
	}, nil
}

// TestAction issues a request against the registry's handler, exercising
// route registration end to end. The HX-Request header is set so mutating
// methods pass the handler's CSRF gate:
//
//	result, err := hywire.TestAction(reg, http.MethodPatch, "/items/42", map[string]string{
//	    "done": "true",
//	})
func TestAction(reg *Registry, method, target string, formData map[string]string) (*TestResult, error) {
	form := url.Values{}
	for k, v := range formData {
		form.Set(k, v)
	}

	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if len(formData) > 0 {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	req.Header.Set("HX-Request", "true")

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, req)

	return &TestResult{
		HTML:       rec.Body.String(),
		StatusCode: rec.Code,
		Headers:    rec.Header(),
	}, nil
}

// TestGet is TestAction with the GET method and no form data.
func TestGet(reg *Registry, target string) (*TestResult, error) {
	return TestAction(reg, http.MethodGet, target, nil)
}
