package handler

import (
	"testing"
)

func TestExtractImageURL(t *testing.T) {
	var test_bodies = []struct {
		Body  string
		URL   string
		Found bool
	}{
		// top-level key
		{`{"url": "http://x/a.jpg"}`, "http://x/a.jpg", true},
		{`{"output_url": "http://cdn/result.jpg"}`, "http://cdn/result.jpg", true},
		{`{"ouput_path_img": "http://x/typo.jpg"}`, "http://x/typo.jpg", true},
		// key order decides, not document order
		{`{"image": "http://x/second.jpg", "url": "http://x/first.jpg"}`, "http://x/first.jpg", true},
		// empty and non-string values are skipped
		{`{"url": "", "link": "http://x/c.jpg"}`, "http://x/c.jpg", true},
		{`{"result": {"id": 1}, "img": "http://x/d.jpg"}`, "http://x/d.jpg", true},
		{`{"result": true, "image_url": null, "img": "http://x/d2.jpg"}`, "http://x/d2.jpg", true},
		// nested under "response"
		{`{"response": {"image_link": "http://x/b.png"}}`, "http://x/b.png", true},
		{`{"url": "http://x/top.jpg", "response": {"url": "http://x/nested.jpg"}}`, "http://x/top.jpg", true},
		{`{"response": "http://x/k.jpg"}`, "", false},
		// found URL keeps its leading @ stripped
		{`{"url": "@http://x/at.jpg"}`, "http://x/at.jpg", true},
		// JSON string
		{`"http://x/e.jpg"`, "http://x/e.jpg", true},
		{`"@http://x/f.jpg"`, "http://x/f.jpg", true},
		{`"https://x/no-ext"`, "https://x/no-ext", true},
		// token scan over JSON body
		{`{"msg": "result at http://x/g.png ok"}`, "http://x/g.png", true},
		{`{"msg": "see @http://x/h, done"}`, "http://x/h", true},
		{`{"foo": "bar"}`, "", false},
		{`42`, "", false},
		{`{"msg": "see http://x/noext now"}`, "", false},
		// plain text
		{"@http://x/img.jpg", "http://x/img.jpg", true},
		{"  http://x/j  \n", "http://x/j", true},
		{"some text http://x/pic.png end", "http://x/pic.png", true},
		{"result: http://x/i.jpeg).", "http://x/i.jpeg", true},
		{"done 'http://x/quoted.jpg'", "", false},
		{"look http://x/noext here", "", false},
		// @http tokens qualify in plain text too, with or without extension
		{"see @http://x/h done", "http://x/h", true},
		{"see @http://x/h.jpg done", "http://x/h.jpg", true},
		{"result: @http://x/img", "http://x/img", true},
		{"", "", false},
		{"service unavailable", "", false},
	}

	for _, tb := range test_bodies {
		img_url, ok := ExtractImageURL(tb.Body)
		if ok != tb.Found {
			t.Fatalf("body %q: expected found %t, got %t (%q)", tb.Body, tb.Found, ok, img_url)
		}
		if img_url != tb.URL {
			t.Fatalf("body %q: expected URL %q, got %q", tb.Body, tb.URL, img_url)
		}
	}
}

func TestScanTokens(t *testing.T) {
	var test_texts = []struct {
		Text  string
		URL   string
		Found bool
	}{
		{"a http://x/1.jpg http://x/2.jpg", "http://x/1.jpg", true},
		{"a http://x/no http://x/2.png", "http://x/2.png", true},
		// first qualifying token wins, either pattern
		{"a @http://x/no http://x/2.png", "@http://x/no", true},
		{"a http://x/2.png @http://x/no", "http://x/2.png", true},
		{"\"http://x/3.jpg\",", "", false},
		{"http://x/4.JPG", "", false},
		{"http://x/5.jpg;", "http://x/5.jpg", true},
		{"\thttp://x/6.jpeg:\n", "http://x/6.jpeg", true},
		{"@http://x/7)", "@http://x/7", true},
	}

	for _, tt := range test_texts {
		img_url, ok := scanTokens(tt.Text)
		if ok != tt.Found || img_url != tt.URL {
			t.Fatalf(
				"text %q: expected (%q, %t), got (%q, %t)",
				tt.Text, tt.URL, tt.Found, img_url, ok,
			)
		}
	}
}
