package settings

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_LayersStoredOverDefaults(t *testing.T) {
	s, err := New(map[string]string{"googlefont": "Roboto", "footertext1": "x"})
	require.NoError(t, err)

	require.Equal(t, "Roboto", s.Get("googlefont"))
	require.Equal(t, "0-0-0-0", s.Get("blockrow3"))
	require.Equal(t, "disabled", s.Get("menuheadercateg"))
	require.Equal(t, "x", s.Get("footertext1"))
}

func TestSettings_Flags(t *testing.T) {
	s := FromMap(map[string]string{"on": "1", "off": "0", "blank": " ", "word": "yes", "n": "12", "bad": "x"})

	require.True(t, s.Bool("on"))
	require.False(t, s.Bool("off"))
	require.False(t, s.Bool("blank"))
	require.False(t, s.Bool("missing"))
	require.True(t, s.Has("word"))
	require.Equal(t, 12, s.Int("n", 3))
	require.Equal(t, 3, s.Int("bad", 3))
}

func TestSettings_CSV(t *testing.T) {
	s := FromMap(map[string]string{"items": "home,myhome,courses", "none": ""})

	require.Equal(t, []string{"home", "myhome", "courses"}, s.CSV("items"))
	require.Equal(t, []string{}, s.CSV("none"))
	require.Equal(t, []string{}, s.CSV("missing"))
}

func TestSettings_Format(t *testing.T) {
	s := FromMap(map[string]string{
		"html":  `<p onclick="x()">Hello <b>there</b></p><script>alert(1)</script>`,
		"text":  "line <i>one</i>\nline two",
		"title": "  <em>Catalog</em> &amp; more ",
		"empty": "",
	})

	out, ok := s.Format("html", FormatHTML)
	require.True(t, ok)
	require.Equal(t, "<p>Hello <b>there</b></p>", out)

	out, ok = s.Format("text", FormatText)
	require.True(t, ok)
	require.Equal(t, "line one<br />line two", out)

	out, ok = s.Format("title", FormatString)
	require.True(t, ok)
	require.Equal(t, "Catalog & more", out)

	out, ok = s.Format("empty", FormatHTML)
	require.False(t, ok)
	require.Empty(t, out)

	out, ok = s.Format("title", FormatRaw)
	require.True(t, ok)
	require.Equal(t, "  <em>Catalog</em> &amp; more ", out)
}

func TestSettings_ValuesIsACopy(t *testing.T) {
	s := FromMap(map[string]string{"a": "1"})
	v := s.Values()
	v["a"] = "2"
	require.Equal(t, "1", s.Get("a"))
}
