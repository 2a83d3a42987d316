package jsonwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/CSV-to-JSON-conversion/internal/types"
)

func sampleDoc() types.Document {
	headers := []string{"name", "age"}
	return types.Document{
		types.NewRecord(headers, []string{"Ann", "30"}),
		types.NewRecord(headers, []string{"Bo", "25"}),
	}
}

func TestMarshal_Pretty(t *testing.T) {
	data, err := Marshal(sampleDoc(), DefaultOptions())
	require.NoError(t, err)

	want := `[
    {
        "name": "Ann",
        "age": "30"
    },
    {
        "name": "Bo",
        "age": "25"
    }
]
`
	assert.Equal(t, want, string(data))
}

func TestMarshal_Compact(t *testing.T) {
	data, err := Marshal(sampleDoc(), CompactOptions())
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Ann","age":"30"},{"name":"Bo","age":"25"}]`+"\n", string(data))
}

func TestMarshal_EmptyDocument(t *testing.T) {
	for _, doc := range []types.Document{nil, {}} {
		data, err := Marshal(doc, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	}
}

func TestMarshal_EmptyRecord(t *testing.T) {
	data, err := Marshal(types.Document{{}}, CompactOptions())
	require.NoError(t, err)
	assert.Equal(t, "[{}]\n", string(data))
}

func TestMarshal_NonASCIIAndHTMLUnescaped(t *testing.T) {
	doc := types.Document{types.NewRecord([]string{"ciudad"}, []string{"Málaga <&> 東京"})}

	data, err := Marshal(doc, CompactOptions())
	require.NoError(t, err)
	assert.Equal(t, `[{"ciudad":"Málaga <&> 東京"}]`+"\n", string(data))
}

func TestMarshal_EscapeHTMLOption(t *testing.T) {
	doc := types.Document{types.NewRecord([]string{"h"}, []string{"<b>"})}

	data, err := Marshal(doc, Options{EscapeHTML: true})
	require.NoError(t, err)
	assert.Equal(t, `[{"h":"\u003cb\u003e"}]`+"\n", string(data))
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := sampleDoc()
	data, err := Marshal(doc, DefaultOptions())
	require.NoError(t, err)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, len(doc))
	for i, rec := range doc {
		for _, f := range rec.Fields {
			assert.Equal(t, f.Value, decoded[i][f.Key])
		}
	}
}

func TestOptionsFor(t *testing.T) {
	assert.Equal(t, PrettyIndent, OptionsFor(false).Indent)
	assert.Equal(t, "", OptionsFor(true).Indent)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.json")

	require.NoError(t, WriteFile(path, sampleDoc(), CompactOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), `[{"name":"Ann"`))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file should not be left behind")
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	require.NoError(t, WriteFile(path, nil, CompactOptions()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "a.json")

	err := WriteFile(path, sampleDoc(), DefaultOptions())
	assert.Error(t, err)
}

func TestWriteFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.json")

	require.NoError(t, WriteFile(path, sampleDoc(), DefaultOptions()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, sampleDoc(), DefaultOptions()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
