// Package config groups everything a card style needs (layout constants,
// colors, font candidates and data source columns) into named profiles.
//
// Two profiles are built in, "roles" and "personas". A TOML file can add
// profiles or adjust the built-in ones. Every table under [profiles] starts
// from the profile named by its extends key (default "roles") and overrides
// only the keys it sets:
//
//	default = "villains"
//
//	[profiles.villains]
//	extends = "personas"
//	title_size = 110
//
//	[profiles.villains.canvas]
//	bottom_padding = 120
//
//	[profiles.villains.style]
//	heart = "#2e2e2e"
//
//	[profiles.villains.fonts]
//	title = ["/usr/share/fonts/truetype/dejavu/DejaVuSerif-Bold.ttf"]
//
//	[profiles.villains.source]
//	id = "Villain Number"
//	title = "Villain"
//	prefix = "V"
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/swipefish/swipecard/pkg/errors"
	"github.com/swipefish/swipecard/pkg/fonts"
	"github.com/swipefish/swipecard/pkg/layout"
	"github.com/swipefish/swipecard/pkg/render"
	"github.com/swipefish/swipecard/pkg/source"
)

// Fonts lists the candidate chains of the two text roles.
type Fonts struct {
	Title     []string `toml:"title"`
	Body      []string `toml:"body"`
	BodyStyle string   `toml:"body_style"` // "regular" or "italic"
}

// Source describes the CSV columns and illustration filenames of a profile.
type Source struct {
	source.Columns
	source.Matcher
}

// Profile is one complete card style.
type Profile struct {
	Name   string
	Layout layout.Profile
	Style  render.Style
	Fonts  Fonts
	Source Source
}

// Validate checks every part of the profile.
func (p Profile) Validate() error {
	if err := p.Layout.Validate(); err != nil {
		return err
	}
	if err := p.Style.Validate(); err != nil {
		return err
	}
	if err := p.Source.Matcher.Validate(); err != nil {
		return err
	}
	c := p.Source.Columns
	if c.ID == "" || c.Title == "" || c.Tagline == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %s: source columns must all be named", p.Name)
	}
	if _, err := fonts.ParseStyle(p.Fonts.BodyStyle); err != nil {
		return err
	}
	return nil
}

// TitleRole is the font role of the title.
func (p Profile) TitleRole() fonts.Role {
	return fonts.Role{Name: "title", Style: fonts.Bold, Candidates: p.Fonts.Title}
}

// BodyRole is the font role of the tagline.
func (p Profile) BodyRole() fonts.Role {
	style, _ := fonts.ParseStyle(p.Fonts.BodyStyle)
	return fonts.Role{Name: "body", Style: style, Candidates: p.Fonts.Body}
}

// ResolveFonts resolves both font roles. Warnings list every skipped
// candidate; they are never fatal.
func (p Profile) ResolveFonts() (title, body *fonts.Typeface, warnings []error) {
	title, tw := fonts.Resolve(p.TitleRole())
	body, bw := fonts.Resolve(p.BodyRole())
	return title, body, append(tw, bw...)
}

// Roles is the built-in role card profile.
func Roles() Profile {
	return Profile{
		Name:   layout.ProfileRoles,
		Layout: layout.Roles(),
		Style:  render.DefaultStyle(),
		Fonts: Fonts{
			Title:     fonts.DefaultCandidates(fonts.Bold),
			Body:      fonts.DefaultCandidates(fonts.Regular),
			BodyStyle: fonts.Regular.String(),
		},
		Source: Source{Columns: source.DefaultColumns(), Matcher: source.DefaultMatcher()},
	}
}

// Personas is the built-in persona card profile.
func Personas() Profile {
	p := Roles()
	p.Name = layout.ProfilePersonas
	p.Layout = layout.Personas()
	p.Fonts.Body = fonts.DefaultCandidates(fonts.Italic)
	p.Fonts.BodyStyle = fonts.Italic.String()
	p.Source.Columns = source.Columns{ID: "Persona Number", Title: "Persona", Tagline: "Tagline"}
	p.Source.Matcher = source.Matcher{Prefix: "P", Digits: 3}
	return p
}

// Config is a set of named profiles.
type Config struct {
	// Default is the profile used when none is named.
	Default  string
	profiles map[string]Profile
}

// Builtin returns a config holding only the built-in profiles.
func Builtin() *Config {
	return &Config{
		Default: layout.ProfileRoles,
		profiles: map[string]Profile{
			layout.ProfileRoles:    Roles(),
			layout.ProfilePersonas: Personas(),
		},
	}
}

// Profile returns the named profile, or the default one for "".
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.Default
	}
	p, ok := c.profiles[name]
	if !ok {
		return Profile{}, errors.New(errors.ErrCodeNotFound, "unknown profile %q (available: %s)", name, strings.Join(c.Names(), ", "))
	}
	return p, nil
}

// Names returns the profile names in sorted order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for n := range c.profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Load reads a TOML profile file on top of the built-in profiles.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

type fileTable struct {
	Default  string                    `toml:"default"`
	Profiles map[string]toml.Primitive `toml:"profiles"`
}

type profileTable struct {
	Extends string `toml:"extends"`
	layout.Profile
	Style  render.Style `toml:"style"`
	Fonts  Fonts        `toml:"fonts"`
	Source Source       `toml:"source"`
}

// Parse decodes TOML profile data on top of the built-in profiles.
func Parse(data []byte) (*Config, error) {
	var f fileTable
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}

	cfg := Builtin()
	r := resolver{md: md, tables: f.Profiles, cfg: cfg, done: map[string]bool{}, active: map[string]bool{}}
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := r.resolve(name); err != nil {
			return nil, err
		}
	}

	if keys := md.Undecoded(); len(keys) > 0 {
		unknown := make([]string, len(keys))
		for i, k := range keys {
			unknown[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(unknown, ", "))
	}

	if f.Default != "" {
		if _, ok := cfg.profiles[f.Default]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "default profile %q is not defined", f.Default)
		}
		cfg.Default = f.Default
	}
	return cfg, nil
}

// resolver applies profile tables in dependency order.
type resolver struct {
	md     toml.MetaData
	tables map[string]toml.Primitive
	cfg    *Config
	done   map[string]bool
	active map[string]bool
}

func (r *resolver) resolve(name string) error {
	if r.done[name] {
		return nil
	}
	if r.active[name] {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %s is part of an extends cycle", name)
	}
	r.active[name] = true
	defer delete(r.active, name)

	var head struct {
		Extends string `toml:"extends"`
	}
	prim := r.tables[name]
	if err := r.md.PrimitiveDecode(prim, &head); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile %s", name)
	}

	base := head.Extends
	if base == "" {
		base = name
		if _, builtin := r.cfg.profiles[name]; !builtin {
			base = layout.ProfileRoles
		}
	}
	if base != name {
		if _, ok := r.tables[base]; ok {
			if err := r.resolve(base); err != nil {
				return err
			}
		}
	}
	start, ok := r.cfg.profiles[base]
	if !ok {
		return errors.New(errors.ErrCodeInvalidConfig, "profile %s extends unknown profile %q", name, base)
	}

	t := profileTable{
		Extends: head.Extends,
		Profile: start.Layout,
		Style:   start.Style,
		Fonts:   start.Fonts,
		Source:  start.Source,
	}
	if err := r.md.PrimitiveDecode(prim, &t); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "profile %s", name)
	}

	p := Profile{Name: name, Layout: t.Profile, Style: t.Style, Fonts: t.Fonts, Source: t.Source}
	p.Layout.Name = name
	if err := p.Validate(); err != nil {
		return fmt.Errorf("profile %s: %w", name, err)
	}
	r.cfg.profiles[name] = p
	r.done[name] = true
	return nil
}
