package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LogoURLPrefix is where footer logos are published.
const LogoURLPrefix = "/public/footer/logos/"

// ErrFooterMismatch is returned when a sponsor cannot be paired with exactly
// one logo asset.
var ErrFooterMismatch = errors.New("footer: sponsors and logos do not match")

// Sponsor is one "Powered by" entry. Logo names the asset file (with or
// without extension). Sponsors without Logo pair with assets by position.
type Sponsor struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	Logo  string `yaml:"logo"`
}

// FooterConfig is the static footer record, usually content/footer/footer.yaml.
type FooterConfig struct {
	Copyright  string    `yaml:"copyright"`
	SourceNote string    `yaml:"sourceNote"` // may contain HTML
	PoweredBy  []Sponsor `yaml:"poweredBy"`
}

// SponsorLogo is a sponsor joined with its asset URL.
type SponsorLogo struct {
	Title string
	URL   string
	Src   string
}

// Footer is the validated footer view model.
type Footer struct {
	Year       int
	Copyright  string
	SourceNote string
	Logos      []SponsorLogo
}

// ReadFooterConfig decodes the footer YAML at path.
func ReadFooterConfig(path string) (FooterConfig, error) {
	var cfg FooterConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// ListLogos returns the file names in dir sorted by name. A missing
// directory yields no logos.
func ListLogos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// JoinFooter pairs every sponsor with one logo file name. Sponsors naming a
// Logo match it by file name or by name without extension. The rest pair by
// position, which requires exactly as many logos as sponsors.
func JoinFooter(cfg FooterConfig, logos []string) (Footer, error) {
	f := Footer{
		Copyright:  cfg.Copyright,
		SourceNote: cfg.SourceNote,
		Logos:      make([]SponsorLogo, 0, len(cfg.PoweredBy)),
	}
	byName := make(map[string]string, len(logos)*2)
	for _, name := range logos {
		byName[name] = name
		byName[strings.TrimSuffix(name, path.Ext(name))] = name
	}
	for i, s := range cfg.PoweredBy {
		var file string
		if s.Logo != "" {
			name, ok := byName[s.Logo]
			if !ok {
				return Footer{}, fmt.Errorf("%w: sponsor %q names missing logo %q", ErrFooterMismatch, s.Title, s.Logo)
			}
			file = name
		} else {
			if len(logos) != len(cfg.PoweredBy) {
				return Footer{}, fmt.Errorf("%w: %d sponsors, %d logos", ErrFooterMismatch, len(cfg.PoweredBy), len(logos))
			}
			file = logos[i]
		}
		f.Logos = append(f.Logos, SponsorLogo{
			Title: s.Title,
			URL:   s.URL,
			Src:   LogoURLPrefix + file,
		})
	}
	return f, nil
}

// LoadFooter reads footer.yaml and logos/ from dir and joins them. A missing
// footer.yaml yields an empty footer.
func LoadFooter(dir string) (Footer, error) {
	cfg, err := ReadFooterConfig(filepath.Join(dir, "footer.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return Footer{}, nil
	}
	if err != nil {
		return Footer{}, err
	}
	logos, err := ListLogos(filepath.Join(dir, "logos"))
	if err != nil {
		return Footer{}, err
	}
	return JoinFooter(cfg, logos)
}
