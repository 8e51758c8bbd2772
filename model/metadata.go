package model

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata keeps every raw `>> key: value` entry in insertion order,
// plus typed fields for the recognized special keys. Raw entries are
// preserved even when a typed field is populated.
type Metadata struct {
	keys []string
	raw  map[string]string

	Author      *NameAndURL
	Source      *NameAndURL
	Time        *RecipeTime
	Servings    []int
	Tags        []string
	Description string
	Emoji       string
}

// NameAndURL is the typed shape of the author and source keys.
type NameAndURL struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// RecipeTime is total minutes, or a prep/cook split when the value was a
// composite mapping.
type RecipeTime struct {
	Total int `yaml:"total"`
	Prep  int `yaml:"prep"`
	Cook  int `yaml:"cook"`
}

// Minutes returns the overall time in minutes.
func (t *RecipeTime) Minutes() int {
	if t.Total > 0 {
		return t.Total
	}
	return t.Prep + t.Cook
}

// Set records a raw entry, preserving first-insertion key order.
func (m *Metadata) Set(key, value string) {
	if m.raw == nil {
		m.raw = make(map[string]string)
	}
	if _, seen := m.raw[key]; !seen {
		m.keys = append(m.keys, key)
	}
	m.raw[key] = value
}

// Get returns the raw value for key.
func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.raw[key]
	return v, ok
}

// Keys returns the raw keys in insertion order.
func (m *Metadata) Keys() []string { return m.keys }

// ApplySpecial parses a recognized special key into its typed field.
// It reports whether the key is special; a non-nil error means the value
// did not match the expected shape and only the raw entry was kept.
func (m *Metadata) ApplySpecial(key, value string) (bool, error) {
	switch key {
	case "author":
		ref, err := parseNameAndURL(value)
		if err != nil {
			return true, err
		}
		m.Author = ref
	case "source":
		ref, err := parseNameAndURL(value)
		if err != nil {
			return true, err
		}
		m.Source = ref
	case "time":
		t, err := parseTime(value)
		if err != nil {
			return true, err
		}
		m.Time = t
	case "servings":
		s, err := parseServings(value)
		if err != nil {
			return true, err
		}
		m.Servings = s
	case "tags":
		tags, err := parseTags(value)
		if err != nil {
			return true, err
		}
		m.Tags = append(m.Tags, tags...)
	case "description":
		m.Description = value
	case "emoji":
		m.Emoji = value
	default:
		return false, nil
	}
	return true, nil
}

// parseNameAndURL accepts a plain name, a bare URL, or a YAML mapping
// with name and url keys.
func parseNameAndURL(value string) (*NameAndURL, error) {
	if strings.HasPrefix(value, "{") {
		var ref NameAndURL
		if err := yaml.Unmarshal([]byte(value), &ref); err != nil {
			return nil, fmt.Errorf("expected a mapping with name and url: %w", err)
		}
		if ref.Name == "" && ref.URL == "" {
			return nil, fmt.Errorf("mapping has neither name nor url")
		}
		return &ref, nil
	}
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return &NameAndURL{URL: value}, nil
	}
	return &NameAndURL{Name: value}, nil
}

// parseTime accepts a duration string like "1 h 30 min", a bare number
// of minutes, or a YAML mapping with prep and cook durations.
func parseTime(value string) (*RecipeTime, error) {
	if strings.HasPrefix(value, "{") {
		var raw struct {
			Prep string `yaml:"prep"`
			Cook string `yaml:"cook"`
		}
		if err := yaml.Unmarshal([]byte(value), &raw); err != nil {
			return nil, fmt.Errorf("expected a mapping with prep and cook: %w", err)
		}
		t := &RecipeTime{}
		var err error
		if raw.Prep != "" {
			if t.Prep, err = parseMinutes(raw.Prep); err != nil {
				return nil, err
			}
		}
		if raw.Cook != "" {
			if t.Cook, err = parseMinutes(raw.Cook); err != nil {
				return nil, err
			}
		}
		if t.Prep == 0 && t.Cook == 0 {
			return nil, fmt.Errorf("mapping has neither prep nor cook time")
		}
		return t, nil
	}
	total, err := parseMinutes(value)
	if err != nil {
		return nil, err
	}
	return &RecipeTime{Total: total}, nil
}

var timeUnits = map[string]int{
	"s": 0, "sec": 0, "secs": 0, "second": 0, "seconds": 0,
	"min": 1, "mins": 1, "minute": 1, "minutes": 1, "m": 1,
	"h": 60, "hr": 60, "hrs": 60, "hour": 60, "hours": 60,
	"d": 1440, "day": 1440, "days": 1440,
}

// parseMinutes reads number/unit pairs ("1 h 30 min"). A bare number is
// taken as minutes.
func parseMinutes(value string) (int, error) {
	fields := strings.Fields(strings.ToLower(value))
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty time value")
	}
	total := 0
	for i := 0; i < len(fields); i++ {
		// Split forms like "30min" into number and unit.
		num, unit := splitNumberSuffix(fields[i])
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid time value %q", value)
		}
		if unit == "" && i+1 < len(fields) {
			i++
			unit = fields[i]
		}
		if unit == "" {
			total += int(n)
			continue
		}
		mult, ok := timeUnits[unit]
		if !ok {
			return 0, fmt.Errorf("unknown time unit %q", unit)
		}
		if mult == 0 {
			total += int(n / 60)
			continue
		}
		total += int(n * float64(mult))
	}
	return total, nil
}

func splitNumberSuffix(s string) (num, unit string) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '.' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

// parseServings accepts a number or a '|'-separated list of numbers.
func parseServings(value string) ([]int, error) {
	parts := strings.Split(value, "|")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid servings value %q", value)
		}
		out = append(out, n)
	}
	return out, nil
}

// parseTags accepts a comma-separated list or a YAML sequence.
func parseTags(value string) ([]string, error) {
	var parts []string
	if strings.HasPrefix(value, "[") {
		if err := yaml.Unmarshal([]byte(value), &parts); err != nil {
			return nil, fmt.Errorf("expected a sequence of tags: %w", err)
		}
	} else {
		parts = strings.Split(value, ",")
	}
	var tags []string
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" {
			return nil, fmt.Errorf("empty tag in %q", value)
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("no tags in %q", value)
	}
	return tags, nil
}
