package folio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
)

const (
	maxCoverWidth = 1200
	jpegQuality   = 80
	coversSubdir  = "covers"
)

// processedImage is a resized cover ready to be written.
type processedImage struct {
	Width  int
	Height int
	Data   []byte
}

// processImage decodes an image from src, resizes it down to maxWidth if
// wider, and encodes it as JPEG.
func processImage(src io.Reader, maxWidth int) (processedImage, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return processedImage{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
		w, h = maxWidth, newH
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return processedImage{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return processedImage{Width: w, Height: h, Data: buf.Bytes()}, nil
}

// localCoverPath returns the file a cover points at when it is a path
// relative to the post, or "" for URLs and site-absolute paths.
func localCoverPath(p Post) string {
	flat := FlattenCover(p.Cover)
	src, _ := flat["src"].(string)
	if src == "" || p.SourcePath == "" {
		return ""
	}
	if strings.Contains(src, "://") || strings.HasPrefix(src, "/") || strings.HasPrefix(src, "data:") {
		return ""
	}
	return filepath.Join(filepath.Dir(p.SourcePath), filepath.FromSlash(src))
}

// ProcessCover resizes a post-relative cover image into staticDir/covers and
// rewrites p.Cover so its img wrapper carries the processed variant under
// "sharp". Covers that are not local files are left alone.
func ProcessCover(p *Post, staticDir string) error {
	file := localCoverPath(*p)
	if file == "" {
		return nil
	}
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("cover of %q: %w", p.Slug, err)
	}
	defer f.Close()

	out, err := processImage(f, maxCoverWidth)
	if err != nil {
		return fmt.Errorf("cover of %q: %w", p.Slug, err)
	}
	dir := filepath.Join(staticDir, coversSubdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create covers dir: %w", err)
	}
	name := p.Slug + ".jpg"
	if err := os.WriteFile(filepath.Join(dir, name), out.Data, 0o644); err != nil {
		return fmt.Errorf("write cover: %w", err)
	}

	cover := map[string]any{}
	img := map[string]any{}
	if m, ok := p.Cover.(map[string]any); ok {
		for k, v := range m {
			if k != coverImgKey && k != "src" {
				cover[k] = v
			}
		}
		// Keys nested under img outrank the outer ones when flattened, so
		// only those describing the original file are dropped.
		if inner, ok := m[coverImgKey].(map[string]any); ok {
			for k, v := range inner {
				switch k {
				case "src", "width", "height", coverSharpKey:
				default:
					img[k] = v
				}
			}
		}
	}
	img[coverSharpKey] = map[string]any{
		"src":    "/public/" + coversSubdir + "/" + name,
		"width":  out.Width,
		"height": out.Height,
	}
	cover[coverImgKey] = img
	p.Cover = cover
	return nil
}
