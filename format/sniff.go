// SPDX-License-Identifier: EPL-2.0

package format

import "strings"

// sniffLen is how many bytes of the stream start are inspected for magic
// signatures. The stream is rewound afterwards.
const sniffLen = 256

// A magicRule matches when both patterns appear at their offsets. pat2 may
// be empty, which matches vacuously. Rules are ordered longest/most
// specific first; the order resolves ambiguity between container formats
// sharing a leading tag (e.g. the IFF "FORM" group) and must not be
// rearranged.
type magicRule struct {
	typ  string
	off2 int
	pat2 string
	off1 int
	pat1 string
}

var magicRules = []magicRule{
	{"voc", 0, "", 0, "Creative Voice File\x1a"},
	{"smp", 0, "", 0, "SOUND SAMPLE DATA"},
	{"wve", 0, "", 0, "ALawSoundFile**"},
	{"amr-wb", 0, "", 0, "#!AMR-WB\n"},
	{"prc", 0, "", 0, "\x37\x00\x00\x10\x6d\x00\x00\x10"},
	{"sph", 0, "", 0, "NIST_1A"},
	{"amr-nb", 0, "", 0, "#!AMR\n"},
	{"txw", 0, "", 0, "LM8953"},
	{"sndt", 0, "", 0, "SOUND\x1a"},
	{"vorbis", 0, "OggS", 29, "vorbis"},
	{"speex", 0, "OggS", 28, "Speex"},
	{"hcom", 65, "FSSD", 128, "HCOM"},
	{"wav", 0, "RIFF", 8, "WAVE"},
	{"wav", 0, "RIFX", 8, "WAVE"},
	{"aiff", 0, "FORM", 8, "AIFF"},
	{"aifc", 0, "FORM", 8, "AIFC"},
	{"8svx", 0, "FORM", 8, "8SVX"},
	{"maud", 0, "FORM", 8, "MAUD"},
	{"xa", 0, "", 0, "XA\x00\x00"},
	{"xa", 0, "", 0, "XAI\x00"},
	{"xa", 0, "", 0, "XAJ\x00"},
	{"au", 0, "", 0, ".snd"},
	{"au", 0, "", 0, "dns."},
	{"au", 0, "", 0, "\x00ds."},
	{"au", 0, "", 0, ".sd\x00"},
	{"flac", 0, "", 0, "fLaC"},
	{"avr", 0, "", 0, "2BIT"},
	{"caf", 0, "", 0, "caff"},
	{"paf", 0, "", 0, " paf"},
	{"sf", 0, "", 0, "\x64\xa3\x01\x00"},
	{"sf", 0, "", 0, "\x00\x01\xa3\x64"},
	{"sf", 0, "", 0, "\x64\xa3\x02\x00"},
	{"sf", 0, "", 0, "\x00\x02\xa3\x64"},
	{"sf", 0, "", 0, "\x64\xa3\x03\x00"},
	{"sf", 0, "", 0, "\x00\x03\xa3\x64"},
	{"sf", 0, "", 0, "\x64\xa3\x04\x00"},
}

// sndrRule is a one-byte marker too weak to test unconditionally; it is
// only consulted when the file extension is already "snd".
var sndrRule = magicRule{"sndr", 7, "\x00", 0, "\x00\x00"}

func (r *magicRule) matches(data []byte) bool {
	if len(data) < r.off1+len(r.pat1) || len(data) < r.off2+len(r.pat2) {
		return false
	}
	return string(data[r.off1:r.off1+len(r.pat1)]) == r.pat1 &&
		string(data[r.off2:r.off2+len(r.pat2)]) == r.pat2
}

// detectMagic returns the type name matched by the first applicable rule,
// or "" when no rule matches.
func detectMagic(data []byte, ext string) string {
	for i := range magicRules {
		if magicRules[i].matches(data) {
			return magicRules[i].typ
		}
	}
	if strings.EqualFold(ext, "snd") && sndrRule.matches(data) {
		return sndrRule.typ
	}
	return ""
}
