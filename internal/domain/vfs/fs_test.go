package vfs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *FS {
	t.Helper()
	root, err := Seed(epoch)
	require.NoError(t, err)
	return New(root).WithClock(func() time.Time { return epoch })
}

func names(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

func TestCreateThenResolveRoundTrip(t *testing.T) {
	fs := seeded(t)
	node := &Node{Type: TypeFile, Name: "note.txt", Content: "hi", CreatedAt: epoch}

	require.NoError(t, fs.CreateChild("/home/user/Documents", node))

	got, err := fs.Resolve("/home/user/Documents/note.txt")
	require.NoError(t, err)
	assert.Equal(t, node, got)
}

func TestCreateChildSetsTimestamp(t *testing.T) {
	fs := seeded(t)
	node := NewFile("a", "x")
	require.NoError(t, fs.CreateChild("/tmp", node))
	assert.True(t, node.CreatedAt.IsZero())

	got, err := fs.Resolve("/tmp/a")
	require.NoError(t, err)
	assert.Equal(t, epoch, got.CreatedAt)

	want := node.Clone()
	want.CreatedAt = epoch
	assert.Equal(t, want, got)
}

func TestListChildrenEmptyDir(t *testing.T) {
	fs := seeded(t)
	require.NoError(t, fs.CreateChild("/home/user", NewDir("Projects")))

	children := fs.ListChildren("/home/user/Projects")
	assert.NotNil(t, children)
	assert.Empty(t, children)
}

func TestListChildrenMissingOrFileIsEmpty(t *testing.T) {
	fs := seeded(t)

	assert.Empty(t, fs.ListChildren("/does/not/exist"))
	assert.Empty(t, fs.ListChildren("/etc/hostname"))
}

func TestListChildrenSorted(t *testing.T) {
	fs := seeded(t)
	assert.Equal(t, []string{"Desktop", "Documents", "Music"}, names(fs.ListChildren("/home/user")))
}

func TestResolveNotFound(t *testing.T) {
	fs := seeded(t)

	tests := []struct {
		name string
		path string
	}{
		{"missing leaf", "/home/user/nope"},
		{"missing intermediate", "/home/ghost/Documents"},
		{"through a file", "/etc/hostname/child"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fs.Resolve(tt.path)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestResolveRoot(t *testing.T) {
	fs := seeded(t)

	for _, p := range []string{"/", "", "//"} {
		root, err := fs.Resolve(p)
		require.NoError(t, err)
		assert.Equal(t, "/", root.Name)
		assert.True(t, root.IsDir())
	}
}

func TestCreateChildAutoVivifies(t *testing.T) {
	fs := seeded(t)

	require.NoError(t, fs.CreateChild("/srv/www/html", NewFile("index.html", "<h1>hi</h1>")))

	for _, dir := range []string{"/srv", "/srv/www", "/srv/www/html"} {
		assert.True(t, fs.IsDir(dir), dir)
	}
	content, err := fs.ReadFile("/srv/www/html/index.html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>hi</h1>", content)
}

func TestCreateChildOverwritesSibling(t *testing.T) {
	fs := seeded(t)

	require.NoError(t, fs.CreateChild("/home/user/Music", NewFile("song", "v1")))
	require.NoError(t, fs.CreateChild("/home/user/Music", NewDir("song")))

	node, err := fs.Resolve("/home/user/Music/song")
	require.NoError(t, err)
	assert.True(t, node.IsDir())
	assert.Empty(t, node.Content)
	assert.Len(t, fs.ListChildren("/home/user/Music"), 1)
}

func TestCreateChildThroughFile(t *testing.T) {
	fs := seeded(t)

	err := fs.CreateChild("/etc/hostname/sub", NewFile("x", ""))
	assert.ErrorIs(t, err, ErrNotDirectory)
	assert.False(t, fs.Exists("/etc/hostname/sub"))
}

func TestCreateChildInvalidName(t *testing.T) {
	fs := seeded(t)

	for _, name := range []string{"", ".", "..", "a/b"} {
		assert.ErrorIs(t, fs.CreateChild("/", NewFile(name, "")), ErrInvalidName, name)
	}
	assert.ErrorIs(t, fs.CreateChild("/", nil), ErrInvalidName)
}

func TestCreateChildCopiesInput(t *testing.T) {
	fs := seeded(t)
	node := NewFile("x.txt", "before")
	require.NoError(t, fs.CreateChild("/", node))

	node.Content = "after"

	content, err := fs.ReadFile("/x.txt")
	require.NoError(t, err)
	assert.Equal(t, "before", content)
}

func TestResolveReturnsCopy(t *testing.T) {
	fs := seeded(t)

	dir, err := fs.Resolve("/home/user")
	require.NoError(t, err)
	delete(dir.Children, "Documents")

	assert.True(t, fs.IsDir("/home/user/Documents"))
}

func TestReadFile(t *testing.T) {
	fs := seeded(t)

	content, err := fs.ReadFile("/etc/hostname")
	require.NoError(t, err)
	assert.Equal(t, "chimera-os", content)

	_, err = fs.ReadFile("/etc")
	assert.ErrorIs(t, err, ErrIsDirectory)

	_, err = fs.ReadFile("/etc/passwd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemove(t *testing.T) {
	fs := seeded(t)

	require.NoError(t, fs.Remove("/home/user/Desktop/Documents.lnk"))
	assert.False(t, fs.Exists("/home/user/Desktop/Documents.lnk"))

	assert.ErrorIs(t, fs.Remove("/home/user/Desktop/Documents.lnk"), ErrNotFound)
	assert.ErrorIs(t, fs.Remove("/"), ErrInvalidPath)

	require.NoError(t, fs.Remove("/home/user/Documents"))
	assert.False(t, fs.Exists("/home/user/Documents/welcome.txt"))
}

func TestStat(t *testing.T) {
	fs := seeded(t)

	entry, err := fs.Stat("/home/user/Documents/welcome.txt")
	require.NoError(t, err)
	assert.Equal(t, "welcome.txt", entry.Name)
	assert.Equal(t, "/home/user/Documents/welcome.txt", entry.Path)
	assert.Equal(t, TypeFile, entry.Type)
	assert.Contains(t, entry.MIME, "text/plain")
	assert.Greater(t, entry.Size, 0)

	entry, err = fs.Stat("/home/user/Desktop/Atlas Reign.lnk")
	require.NoError(t, err)
	assert.Equal(t, "application/x-ms-shortcut", entry.MIME)

	entry, err = fs.Stat("/home")
	require.NoError(t, err)
	assert.Equal(t, "inode/directory", entry.MIME)
	assert.Zero(t, entry.Size)
}

func TestFind(t *testing.T) {
	fs := seeded(t)

	entries, err := fs.Find("**/*.lnk")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "/home/user/Desktop/Atlas Reign.lnk", entries[0].Path)
	assert.Equal(t, "/home/user/Desktop/Documents.lnk", entries[1].Path)

	entries, err = fs.Find("/etc/*")
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = fs.FindFold("**/*WELCOME*")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "welcome.txt", entries[0].Name)

	_, err = fs.Find("[")
	assert.Error(t, err)
}

func TestSnapshotAndReplace(t *testing.T) {
	fs := seeded(t)
	snap := fs.Snapshot()

	require.NoError(t, fs.Remove("/etc"))
	assert.False(t, fs.Exists("/etc/motd"))

	require.NoError(t, fs.Replace(snap))
	assert.True(t, fs.Exists("/etc/motd"))

	assert.ErrorIs(t, fs.Replace(NewFile("x", "")), ErrNotDirectory)
	assert.ErrorIs(t, fs.Replace(nil), ErrNotDirectory)
}

func TestOnMutate(t *testing.T) {
	var ops []string
	fs := seeded(t).OnMutate(func(op, p string) { ops = append(ops, op+" "+p) })

	require.NoError(t, fs.CreateChild("/home/user", NewDir("Pictures")))
	require.NoError(t, fs.Remove("/home/user/Pictures"))
	_ = fs.Remove("/nope")

	assert.Equal(t, []string{"create /home/user/Pictures", "remove /home/user/Pictures"}, ops)
}

func TestConcurrentAccess(t *testing.T) {
	fs := seeded(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = fs.CreateChild("/tmp", NewFile(string(rune('a'+i)), "x"))
		}(i)
		go func() {
			defer wg.Done()
			_ = fs.ListChildren("/tmp")
		}()
	}
	wg.Wait()

	assert.Len(t, fs.ListChildren("/tmp"), 20)
}
