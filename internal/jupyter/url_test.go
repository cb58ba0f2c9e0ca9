package jupyter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinEncode(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		parts []string
		want  string
	}{
		{"plain", "http://localhost:8888", []string{"notebooks", "a.ipynb"}, "http://localhost:8888/notebooks/a.ipynb"},
		{"trailing base slash", "http://localhost:8888/", []string{"tree", "work"}, "http://localhost:8888/tree/work"},
		{"nested path", "http://h/base", []string{"convert", "html", "dir/sub/n.ipynb"}, "http://h/base/convert/html/dir/sub/n.ipynb"},
		{"spaces encoded", "http://h", []string{"files", "my notes/Untitled 1.ipynb"}, "http://h/files/my%20notes/Untitled%201.ipynb"},
		{"question mark encoded", "http://h", []string{"files", "what?.ipynb"}, "http://h/files/what%3F.ipynb"},
		{"empty parts", "http://h", []string{"tree", ""}, "http://h/tree"},
		{"nothing", "http://h/", nil, "http://h/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, JoinEncode(tc.base, tc.parts...))
		})
	}
}

func TestPathSplit(t *testing.T) {
	dir, name := PathSplit("work/analysis/run.ipynb")
	assert.Equal(t, "work/analysis", dir)
	assert.Equal(t, "run.ipynb", name)

	dir, name = PathSplit("run.ipynb")
	assert.Equal(t, "", dir)
	assert.Equal(t, "run.ipynb", name)

	dir, name = PathSplit("/top/run.ipynb")
	assert.Equal(t, "top", dir)
	assert.Equal(t, "run.ipynb", name)
}

func TestAPIPath(t *testing.T) {
	got := APIPath("http://h/", "contents", "a b.ipynb", "checkpoints")
	if got != "http://h/api/contents/a%20b.ipynb/checkpoints" {
		t.Fatalf("unexpected path %q", got)
	}
}
