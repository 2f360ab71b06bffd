package golden

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Assert compares the indented JSON encoding of obj with testdata/<name>.json
// A missing golden file is written from obj, set GOLDEN_UPDATE=1 to rewrite existing files
func Assert(t *testing.T, name string, obj interface{}, msgAndArgs ...interface{}) bool {
	t.Helper()

	filename := filepath.Join("testdata", name+".json")
	objJSON, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		t.Fatal(err)
	}

	expects, err := os.ReadFile(filename)
	if os.IsNotExist(err) || os.Getenv("GOLDEN_UPDATE") == "1" {
		write(t, filename, objJSON)
		return true
	} else if err != nil {
		t.Fatal(err)
	}

	if !assert.Equal(t, strings.Trim(string(expects), "\n"), strings.Trim(string(objJSON), "\n"), msgAndArgs...) {
		t.Logf("golden file %s", filename)
		return false
	}

	return true
}

func write(t *testing.T, filename string, b []byte) {
	logrus.WithField("filename", filename).Info("writing golden file")
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filename, append(b, '\n'), 0644); err != nil {
		t.Fatal(err)
	}
}
