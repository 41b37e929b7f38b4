package slug

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"punctuation and padding", "  DevFest!! West Africa 2025  ", "devfest-west-africa-2025"},
		{"ampersand", "AI & Machine Learning Summit", "ai-machine-learning-summit"},
		{"existing hyphens collapse", "Blockchain -- Web3 --- Hackathon", "blockchain-web3-hackathon"},
		{"tabs and newlines", "Open\tSource\n\nDay", "open-source-day"},
		{"non-breaking spaces", "Go\u00a0Conf\u00a0Lagos", "go-conf-lagos"},
		{"thin space and ideographic space", "Rust\u2009Meetup\u3000Abuja", "rust-meetup-abuja"},
		{"byte order mark", "\ufeffKubeCon\ufeffAfrica", "kubecon-africa"},
		{"leading and trailing hyphens", "--React Africa--", "react-africa"},
		{"non ascii letters dropped", "Café Ñandú 2025", "caf-and-2025"},
		{"only punctuation", "!!! ???", ""},
		{"empty", "", ""},
		{"already a slug", "women-in-tech-summit-2025", "women-in-tech-summit-2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.title))
		})
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("devfest-west-africa-2025"))
	assert.True(t, Valid("a"))
	assert.False(t, Valid(""))
	assert.False(t, Valid("-leading"))
	assert.False(t, Valid("trailing-"))
	assert.False(t, Valid("double--hyphen"))
	assert.False(t, Valid("Upper"))
	assert.False(t, Valid("under_score"))
}

func titleGen() gopter.Gen {
	return gen.SliceOf(gen.OneGenOf(
		gen.AlphaNumChar(),
		gen.OneConstOf(' ', '-', '\t', '!', '&', '_', '.', 'É', 'ß', '\n', '\u00a0', '\u2009'),
	), reflect.TypeOf(rune(0))).Map(func(rs []rune) string { return string(rs) })
}

func TestDeriveProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("derive is idempotent", prop.ForAll(
		func(title string) bool {
			once := Derive(title)
			return Derive(once) == once
		},
		titleGen(),
	))

	properties.Property("derived slug only contains [a-z0-9-]", prop.ForAll(
		func(title string) bool {
			for _, r := range Derive(title) {
				if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '-') {
					return false
				}
			}
			return true
		},
		titleGen(),
	))

	properties.Property("no leading, trailing or duplicate hyphens", prop.ForAll(
		func(title string) bool {
			s := Derive(title)
			return !strings.HasPrefix(s, "-") && !strings.HasSuffix(s, "-") && !strings.Contains(s, "--")
		},
		titleGen(),
	))

	properties.Property("non-empty slugs are valid", prop.ForAll(
		func(title string) bool {
			s := Derive(title)
			return s == "" || Valid(s)
		},
		titleGen(),
	))

	properties.TestingRun(t)
}
