package places

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Place is a decoded geographic location with optional descriptive metadata.
// The order places are decoded in is meaningful: it determines marker numbering.
type Place struct {
	Lat      float64
	Lng      float64
	Name     string
	Address  string
	Phone    string
	Category string
	Link     string
}

// DefaultName is used when a record or legacy URL carries no display name.
const DefaultName = "Location"

var legacyQueryPattern = regexp.MustCompile(`[?&]q=([-\d.]+),([-\d.]+)`)

// Parse decodes a location payload into an ordered list of places.
//
// Two encodings are supported. The structured form is a semicolon-separated
// list of records, each "lat,lng,name|address|phone|category|link" where only
// the coordinates are mandatory. The legacy form is a URL carrying "q=lat,lng"
// in its query string and yields at most one place.
//
// Malformed records are skipped, not errors: a payload that decodes to nothing
// simply means there is nothing to render.
func Parse(payload string) []Place {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil
	}

	if strings.Contains(payload, ";") || !strings.HasPrefix(payload, "http") {
		return parseStructured(payload)
	}
	return parseLegacyURL(payload)
}

func parseStructured(payload string) []Place {
	var result []Place

	for _, record := range strings.Split(payload, ";") {
		place, ok := parseRecord(record)
		if !ok {
			continue
		}
		result = append(result, place)
	}

	return result
}

// parseRecord decodes a single "lat,lng,name|address|phone|category|link"
// record. The name segment may itself contain commas, so everything after the
// second comma is rejoined before the pipe-separated fields are split.
func parseRecord(record string) (Place, bool) {
	parts := strings.Split(record, ",")
	if len(parts) < 2 {
		return Place{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Place{}, false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Place{}, false
	}

	place := Place{Lat: lat, Lng: lng, Name: DefaultName}

	if len(parts) > 2 {
		info := strings.Join(parts[2:], ",")
		fields := strings.Split(info, "|")
		assign := func(i int) string {
			if i < len(fields) {
				return strings.TrimSpace(fields[i])
			}
			return ""
		}
		if name := assign(0); name != "" {
			place.Name = name
		}
		place.Address = assign(1)
		place.Phone = assign(2)
		place.Category = assign(3)
		place.Link = assign(4)
	}

	return place, true
}

func parseLegacyURL(payload string) []Place {
	if _, err := url.Parse(payload); err != nil {
		return nil
	}

	match := legacyQueryPattern.FindStringSubmatch(payload)
	if match == nil {
		return nil
	}

	lat, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(match[2], 64)
	if err != nil {
		return nil
	}

	return []Place{{Lat: lat, Lng: lng, Name: DefaultName}}
}
