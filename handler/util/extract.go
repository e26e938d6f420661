package handler

import (
	"encoding/json"
	"strings"
)

type urlExtractor func() (string, bool)

// ExtractImageURL tries to recover a result image URL from a try-on API
// response body. Best-effort: the upstream response shape is undocumented.
func ExtractImageURL(body string) (img_url string, ok bool) {
	var decoded any
	if err := json.Unmarshal([]byte(body), &decoded); err == nil {
		img_url, ok = firstMatch(
			func() (string, bool) { return scanImageURLKeys(decoded) },
			func() (string, bool) { return scanNestedResponse(decoded) },
			func() (string, bool) { return directURLString(decoded) },
			func() (string, bool) { return scanTokens(body) },
		)
	} else {
		text := strings.TrimSpace(body)
		img_url, ok = firstMatch(
			func() (string, bool) { return directURL(text) },
			func() (string, bool) { return scanTokens(text) },
		)
	}

	if ok {
		img_url = strings.TrimPrefix(img_url, "@")
	}

	return img_url, ok
}

func firstMatch(extractors ...urlExtractor) (string, bool) {
	for _, extract := range extractors {
		if img_url, ok := extract(); ok {
			return img_url, true
		}
	}

	return "", false
}

// First non-empty string under one of image_url_keys.
// Non-string values are skipped.
func scanImageURLKeys(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	for _, key := range image_url_keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s, true
		}
	}

	return "", false
}

func scanNestedResponse(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	return scanImageURLKeys(obj[NESTED_RESPONSE_KEY])
}

func directURLString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}

	return directURL(s)
}

func directURL(s string) (string, bool) {
	if strings.HasPrefix(s, URL_PREFIX) || strings.HasPrefix(s, AT_URL_PREFIX) {
		return s, true
	}

	return "", false
}

// scanTokens returns the first whitespace-separated token that looks
// like an image URL. Any "@http" token also qualifies regardless of
// extension.
func scanTokens(text string) (string, bool) {
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, URL_PREFIX) && hasImageExt(word) {
			return strings.Trim(word, TOKEN_STRIP_CHARS), true
		} else if strings.HasPrefix(word, AT_URL_PREFIX) {
			return strings.Trim(word, TOKEN_STRIP_CHARS), true
		}
	}

	return "", false
}

func hasImageExt(word string) bool {
	for _, ext := range image_url_exts {
		if strings.Contains(word, ext) {
			return true
		}
	}

	return false
}
