package folio

import (
	"strconv"
	"strings"
)

// CoverShape names the forms a cover value may arrive in from front matter
// or from the cover processor.
type CoverShape int

const (
	// CoverNone means the post has no cover.
	CoverNone CoverShape = iota
	// CoverFlat is a bare image reference: a string, or a map without "img".
	CoverFlat
	// CoverWrapped is a map carrying an "img" wrapper (string or map).
	CoverWrapped
	// CoverProcessed is a wrapped cover whose "img" also holds a "sharp"
	// processed-image variant.
	CoverProcessed
)

const (
	coverImgKey   = "img"
	coverSharpKey = "sharp"
)

func (s CoverShape) String() string {
	switch s {
	case CoverFlat:
		return "flat"
	case CoverWrapped:
		return "wrapped"
	case CoverProcessed:
		return "processed"
	default:
		return "none"
	}
}

// Cover is the canonical cover image handed to templates.
type Cover struct {
	Src    string
	Alt    string
	Credit string
	URL    string // credit link
	Width  int
	Height int
}

// ClassifyCover reports which shape raw arrived in.
func ClassifyCover(raw any) CoverShape {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return CoverNone
		}
		return CoverFlat
	case map[string]any:
		if len(v) == 0 {
			return CoverNone
		}
		img, ok := v[coverImgKey]
		if !ok {
			return CoverFlat
		}
		if m, ok := img.(map[string]any); ok {
			if _, ok := m[coverSharpKey].(map[string]any); ok {
				return CoverProcessed
			}
		}
		return CoverWrapped
	default:
		return CoverNone
	}
}

// FlattenCover merges raw into a single map. Keys are applied in order of
// increasing specificity: the cover itself, then img.sharp, then img. The
// result never contains an "img" key, so flattening twice yields the same
// map. It returns nil for CoverNone. raw is not modified.
func FlattenCover(raw any) map[string]any {
	switch ClassifyCover(raw) {
	case CoverNone:
		return nil
	case CoverFlat:
		if s, ok := raw.(string); ok {
			return map[string]any{"src": strings.TrimSpace(s)}
		}
	}

	m := raw.(map[string]any)
	out := make(map[string]any, len(m)+4)
	for k, v := range m {
		if k != coverImgKey {
			out[k] = v
		}
	}
	switch img := m[coverImgKey].(type) {
	case string:
		out["src"] = img
	case map[string]any:
		if sharp, ok := img[coverSharpKey].(map[string]any); ok {
			for k, v := range sharp {
				out[k] = v
			}
		}
		for k, v := range img {
			if k != coverSharpKey {
				out[k] = v
			}
		}
	}
	return out
}

// CoverFromMap decodes a flattened cover. It returns nil when m has no src.
func CoverFromMap(m map[string]any) *Cover {
	src := stringField(m, "src")
	if src == "" {
		return nil
	}
	return &Cover{
		Src:    src,
		Alt:    stringField(m, "alt"),
		Credit: stringField(m, "credit"),
		URL:    stringField(m, "url"),
		Width:  intField(m, "width"),
		Height: intField(m, "height"),
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// intField accepts the numeric types produced by both yaml.v3 and encoding/json.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}
