package charset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
)

func TestDetect_Empty(t *testing.T) {
	_, err := Detect(nil)
	assert.ErrorIs(t, err, ErrUndetectable)
}

func TestDetect_UTF8(t *testing.T) {
	text := strings.Repeat("名前,年齢,都市\n山田太郎,三十,東京都\n", 20)

	det, err := Detect([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, "UTF-8", det.Charset)
	assert.Greater(t, det.Confidence, 0)
}

func TestDetect_ResultIsDecodable(t *testing.T) {
	raw := []byte("name,age\nAnn,30\nBo,25\n")

	det, err := Detect(raw)
	require.NoError(t, err)
	require.NotEmpty(t, det.Charset)

	text, err := Decode(raw, det.Charset)
	require.NoError(t, err)
	assert.Equal(t, string(raw), text)
}

func TestLookup(t *testing.T) {
	tests := []struct {
		label string
		ok    bool
	}{
		{"utf-8", true},
		{"UTF-8", true},
		{"utf8", true},
		{"utf_8", true},
		{"latin-1", true},
		{"ISO-8859-1", true},
		{"windows-1251", true},
		{"cp1252", true},
		{"Shift_JIS", true},
		{"GB-18030", true},
		{"ascii", true},
		{"", false},
		{"no-such-charset", false},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			enc, err := Lookup(tt.label)
			if tt.ok {
				require.NoError(t, err)
				assert.NotNil(t, enc)
			} else {
				assert.ErrorIs(t, err, ErrUnsupported)
			}
		})
	}
}

func TestLookup_Latin1IsNotWindows1252(t *testing.T) {
	enc, err := Lookup("latin-1")
	require.NoError(t, err)
	assert.Equal(t, charmap.ISO8859_1, enc)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("auto"))
	assert.True(t, Supported("AUTO"))
	assert.True(t, Supported("utf-8"))
	assert.False(t, Supported("klingon"))
}

func TestDecode_UTF8StripsBOM(t *testing.T) {
	text, err := Decode([]byte("\xEF\xBB\xBFname,age\n"), "utf-8")
	require.NoError(t, err)
	assert.Equal(t, "name,age\n", text)
}

func TestDecode_InvalidUTF8(t *testing.T) {
	_, err := Decode([]byte("name\nJos\xe9\n"), "utf-8")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "offset 8")
}

func TestDecode_Latin1(t *testing.T) {
	text, err := Decode([]byte("name\nJos\xe9\n"), "latin-1")
	require.NoError(t, err)
	assert.Equal(t, "name\nJosé\n", text)
}

func TestDecode_Windows1251(t *testing.T) {
	raw, err := charmap.Windows1251.NewEncoder().String("имя,город\nИван,Москва\n")
	require.NoError(t, err)

	text, err := Decode([]byte(raw), "windows-1251")
	require.NoError(t, err)
	assert.Equal(t, "имя,город\nИван,Москва\n", text)
}

func TestDecode_ShiftJIS(t *testing.T) {
	raw, err := japanese.ShiftJIS.NewEncoder().String("名前,都市\n山田,東京\n")
	require.NoError(t, err)

	text, err := Decode([]byte(raw), "shift_jis")
	require.NoError(t, err)
	assert.Equal(t, "名前,都市\n山田,東京\n", text)
}

func TestDecode_MalformedMultiByte(t *testing.T) {
	tests := []struct {
		label string
		raw   string
	}{
		{"shift_jis", "a,b\n\x81\x20,x\n"},
		{"euc-jp", "a,b\n\x81\x20,x\n"},
		{"utf-16le", "a\x00,\x00b\x00\n"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw), tt.label)
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestDecode_GenuineReplacementCharacter(t *testing.T) {
	// "a,\ufffd" in UTF-16LE.
	text, err := Decode([]byte("a\x00,\x00\xfd\xff"), "utf-16le")
	require.NoError(t, err)
	assert.Equal(t, "a,\ufffd", text)
}

func TestDecode_ASCIIRejectsHighBytes(t *testing.T) {
	for _, label := range []string{"ascii", "us-ascii"} {
		_, err := Decode([]byte("name\nJos\xe9\n"), label)
		assert.ErrorIs(t, err, ErrDecode, label)
	}

	text, err := Decode([]byte("name\nJose\n"), "ascii")
	require.NoError(t, err)
	assert.Equal(t, "name\nJose\n", text)
}

func TestDecode_UnsupportedLabel(t *testing.T) {
	_, err := Decode([]byte("a,b\n"), "klingon")
	assert.ErrorIs(t, err, ErrUnsupported)
}
