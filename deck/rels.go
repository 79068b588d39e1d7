package deck

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// relationships represents a .rels manifest. Only Relationship elements are
// collected; anything else in the manifest is ignored.
type relationships struct {
	XMLName xml.Name       `xml:"Relationships"`
	Rels    []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// audioExts is the fixed allowlist of audio extensions recognized in
// relationship targets.
var audioExts = map[string]bool{
	".mp3": true,
	".m4a": true,
	".wav": true,
	".aac": true,
	".ogg": true,
}

func slideRelsPath(number int) string {
	return fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", number)
}

// slideRels parses slide N's relationship manifest. A missing or malformed
// manifest yields nil: slides without one simply have no related parts.
func (d *Deck) slideRels(number int) []relationship {
	data, err := d.ReadPart(slideRelsPath(number))
	if err != nil {
		return nil
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil
	}
	return rels.Rels
}

// AudioTargets returns the container paths of audio parts referenced by
// slide N's relationship manifest. Audio is never embedded as a shape the
// way pictures are; the manifest is the only structural link from a slide to
// its audio. Targets that do not exist in the container are dropped.
func (d *Deck) AudioTargets(number int) []string {
	var targets []string
	for _, rel := range d.slideRels(number) {
		if !strings.Contains(rel.Target, "media/") {
			continue
		}
		norm := normalizeMediaTarget(rel.Target)
		if !audioExts[strings.ToLower(path.Ext(norm))] {
			continue
		}
		if !d.HasPart(norm) {
			continue
		}
		targets = append(targets, norm)
	}
	return targets
}

// normalizeMediaTarget rewrites a manifest target like "../media/media1.m4a"
// to its container path "ppt/media/media1.m4a".
func normalizeMediaTarget(target string) string {
	norm := strings.ReplaceAll(target, "\\", "/")
	norm = strings.ReplaceAll(norm, "..", "")
	norm = strings.TrimLeft(norm, "/")
	if !strings.HasPrefix(norm, "ppt/") {
		norm = "ppt/" + norm
	}
	return norm
}
